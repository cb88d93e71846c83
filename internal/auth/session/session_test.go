package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func issueValue(t *testing.T, m *Manager, userID string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Issue(rec, userID); err != nil {
		t.Fatalf("issue error: %v", err)
	}
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == CookieName {
			return c.Value
		}
	}
	t.Fatalf("cookie %s not set", CookieName)
	return ""
}

func TestIssueValidateRoundtrip(t *testing.T) {
	m := New("test-secret", false)
	raw := issueValue(t, m, "lecturer@example.com")

	got, ok := m.Validate(raw)
	if !ok {
		t.Fatalf("fresh cookie rejected")
	}
	if got != "lecturer@example.com" {
		t.Fatalf("userId = %q, want lecturer@example.com", got)
	}
}

func TestCookieAttributes(t *testing.T) {
	m := New("test-secret", true)
	rec := httptest.NewRecorder()
	if err := m.Issue(rec, "u1"); err != nil {
		t.Fatalf("issue error: %v", err)
	}
	var c *http.Cookie
	for _, cc := range rec.Result().Cookies() {
		if cc.Name == CookieName {
			c = cc
		}
	}
	if c == nil {
		t.Fatalf("cookie not set")
	}
	if !c.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if !c.Secure {
		t.Fatalf("cookie must be Secure in production config")
	}
	if c.Path != "/" {
		t.Fatalf("cookie path = %q, want /", c.Path)
	}
	if c.MaxAge != int(MaxAge.Seconds()) {
		t.Fatalf("cookie max-age = %d, want %d", c.MaxAge, int(MaxAge.Seconds()))
	}
}

func TestExpiredByAge(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	m := NewWithClock("test-secret", false, func() time.Time { return clock })

	raw := issueValue(t, m, "u1")

	// ровно на границе ещё валидна
	clock = issuedAt.Add(MaxAge)
	if _, ok := m.Validate(raw); !ok {
		t.Fatalf("cookie at exactly max-age must still validate")
	}

	// за границей — нет
	clock = issuedAt.Add(MaxAge + time.Second)
	if _, ok := m.Validate(raw); ok {
		t.Fatalf("cookie past max-age must be rejected")
	}
}

func TestTamperedSignature(t *testing.T) {
	m := New("test-secret", false)
	raw := issueValue(t, m, "u1")

	body, sig, _ := strings.Cut(raw, ".")

	// перевёрнутый байт в подписи
	mut := []byte(sig)
	if mut[3] == 'A' {
		mut[3] = 'B'
	} else {
		mut[3] = 'A'
	}
	if _, ok := m.Validate(body + "." + string(mut)); ok {
		t.Fatalf("tampered signature accepted")
	}

	// подпись чужим секретом
	other := New("other-secret", false)
	foreign := issueValue(t, other, "u1")
	if _, ok := m.Validate(foreign); ok {
		t.Fatalf("cookie signed with a different secret accepted")
	}
}

func TestMalformedValues(t *testing.T) {
	m := New("test-secret", false)

	for _, raw := range []string{
		"",
		"no-separator",
		".onlysig",
		"onlybody.",
		"not-base64!.not-base64!",
		"eyJ4IjoxfQ.YWJj", // валидный base64, но мусор внутри
	} {
		if _, ok := m.Validate(raw); ok {
			t.Fatalf("malformed value %q accepted", raw)
		}
	}
}

func TestEmptyUserIDRejected(t *testing.T) {
	m := New("test-secret", false)
	raw := issueValue(t, m, "")
	if _, ok := m.Validate(raw); ok {
		t.Fatalf("session without userId accepted")
	}
}

func TestClear(t *testing.T) {
	m := New("test-secret", false)
	rec := httptest.NewRecorder()
	m.Clear(rec)

	var c *http.Cookie
	for _, cc := range rec.Result().Cookies() {
		if cc.Name == CookieName {
			c = cc
		}
	}
	if c == nil {
		t.Fatalf("clear must rewrite the cookie")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("clear must drop the value and expire the cookie, got value=%q max-age=%d", c.Value, c.MaxAge)
	}
}
