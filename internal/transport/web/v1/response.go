package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrInvalidExpiry):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeInvalidExpiry, "invalid expiry")
	case errors.Is(err, domain.ErrInvalidCredentials):
		// один текст для несуществующего аккаунта и неверного пароля
		return http.StatusUnauthorized, domain.Fail(domain.ErrCodeInvalidCredentials, "invalid credentials")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, domain.Fail(domain.ErrCodeUnauth, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.Fail(domain.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	default:
		// БД/хранилище: ретраев нет, наружу 500
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}
func WriteOKResponse(w http.ResponseWriter, r *http.Request, resp any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkResponse(resp))
}

// WriteDomainError: ошибки аутентификации/роли для браузера — мягкий
// redirect (на /login либо /dashboard), для API-клиента — конверт.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if target, ok := mw.RedirectTarget(err); ok && mw.WantsHTML(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
