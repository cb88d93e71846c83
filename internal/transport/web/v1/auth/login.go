package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

type Handler struct {
	Log      *log.Logger
	Identity *identity.Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обрабатывает POST /v1/auth/login: проверка пароля + выдача
// подписанной cookie. Текст отказа всегда один — аккаунты не перечисляем.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	// Принимаем JSON, но поддержим и форму (страница логина шлёт form-data).
	var req loginRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	u, err := h.Identity.Login(r.Context(), w, req.Email, req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "login failed", err, "email", strings.ToLower(req.Email))
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "role", u.Role)
	if mw.WantsHTML(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	v1.WriteOKResponse(w, r, u)
}

// Logout обрабатывает POST /v1/auth/logout: только сброс cookie,
// серверного списка сессий нет — неистёкшая cookie иначе не отзывается.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())

	h.Identity.Logout(w)

	logx.Info(h.Log, reqID, op, "ok")
	if mw.WantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	v1.WriteOKData(w, r, "logged out")
}
