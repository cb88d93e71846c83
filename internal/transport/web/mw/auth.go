package mw

import (
	"net/http"
	"strings"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
)

// SessionAuth кладёт пользователя валидной cookie-сессии в контекст.
// Битая/просроченная/чужая cookie неотличима от отсутствующей: идём дальше
// неаутентифицированными, гейты ниже решают сами.
func SessionAuth(ident *identity.Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := ident.CurrentUser(r.Context(), r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

// WantsHTML — браузерная навигация получает redirect, API-клиент — конверт.
func WantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// RedirectTarget возвращает адрес мягкого отказа для доменной ошибки
// авторизации: на логин без сессии, на дашборд при чужой роли.
func RedirectTarget(err error) (string, bool) {
	switch err {
	case domain.ErrUnauth:
		return "/login", true
	case domain.ErrForbidden:
		return "/dashboard", true
	default:
		return "", false
	}
}
