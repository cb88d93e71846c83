package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// Подписанная cookie-сессия: <base64url(JSON{userId,iat})>.<base64url(HMAC-SHA256)>.
// Серверного состояния нет: logout — очистка cookie, украденная cookie живёт до MaxAge.

const (
	CookieName   = "an_session"
	MaxAge       = 8 * time.Hour // абсолютный срок, без продления
	cookiePath   = "/"
	sigSeparator = "."
)

type payload struct {
	UserID string `json:"userId"`
	IAT    int64  `json:"iat"`
}

type Manager struct {
	secret []byte
	secure bool // Secure-флаг cookie, включаем в production
	now    func() time.Time
}

func New(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure, now: time.Now}
}

// NewWithClock — для тестов с управляемым временем.
func NewWithClock(secret string, secure bool, now func() time.Time) *Manager {
	return &Manager{secret: []byte(secret), secure: secure, now: now}
}

// Issue выставляет cookie с подписанной парой {userId, iat=now}.
func (m *Manager) Issue(w http.ResponseWriter, userID domain.UserID) error {
	body, err := json.Marshal(payload{UserID: userID, IAT: m.now().Unix()})
	if err != nil {
		return err
	}
	enc := base64.RawURLEncoding.EncodeToString(body)
	value := enc + sigSeparator + m.sign(enc)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		Path:     cookiePath,
		MaxAge:   int(MaxAge.Seconds()),
	})
	return nil
}

// Clear сбрасывает cookie (MaxAge<0 → Max-Age=0 на проводе).
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		Path:     cookiePath,
		MaxAge:   -1,
	})
}

// Validate разбирает значение cookie и возвращает userId.
// Любой дефект (формат, подпись, срок, мусорный JSON) неотличим от отсутствия
// сессии: ("", false), наружу ошибок не бывает.
func (m *Manager) Validate(raw string) (domain.UserID, bool) {
	body, sig, found := strings.Cut(raw, sigSeparator)
	if !found || body == "" || sig == "" {
		return "", false
	}

	// сравниваем подписи за константное время, длину тоже не светим
	expected := m.sign(body)
	if len(expected) != len(sig) || !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", false
	}
	var p payload
	if err := json.Unmarshal(decoded, &p); err != nil {
		return "", false
	}
	if p.UserID == "" {
		return "", false
	}
	if m.now().Unix()-p.IAT > int64(MaxAge.Seconds()) {
		return "", false
	}
	return p.UserID, true
}

// FromRequest — Validate поверх cookie запроса.
func (m *Manager) FromRequest(r *http.Request) (domain.UserID, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return m.Validate(c.Value)
}

func (m *Manager) sign(body string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
