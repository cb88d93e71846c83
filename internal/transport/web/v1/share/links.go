package share

import (
	"net/http"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/sharelink"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

type createdResponse struct {
	Link domain.ShareLink `json:"link"`
	URL  string           `json:"url"` // относительный путь /share/{token}
}

// Create обрабатывает POST /v1/notes/{id}/links. Только лектор.
// Поля формы — как на дашборде: expiryMode + expiresInHours /
// expiresInMonths / expiresAtDateTime.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "share.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "path", r.URL.Path)

	user, err := identity.RequireRole(r.Context(), domain.RoleLecturer)
	if err != nil {
		logx.Error(h.Log, reqID, op, "role gate", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	_ = r.ParseForm()
	spec, err := sharelink.ParseExpiryForm(
		r.FormValue("expiryMode"),
		r.FormValue("expiresInHours"),
		r.FormValue("expiresInMonths"),
		r.FormValue("expiresAtDateTime"),
	)
	if err != nil {
		// нечитаемая явная дата — инлайн-ошибка формы, не 500
		logx.Error(h.Log, reqID, op, "bad expiry", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	link, err := h.Links.Create(r.Context(), r.PathValue("id"), user.ID, spec)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "note_id", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "note_id", link.NoteID)
	v1.WriteOKResponse(w, r, createdResponse{Link: link, URL: "/share/" + link.Token})
}

// List обрабатывает GET /v1/notes/{id}/links — аудит всех ссылок конспекта,
// включая отозванные и истёкшие. Только лектор.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "share.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	if _, err := identity.RequireRole(r.Context(), domain.RoleLecturer); err != nil {
		logx.Error(h.Log, reqID, op, "role gate", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if _, err := h.Notes.NoteByID(r.Context(), r.PathValue("id")); err != nil {
		logx.Error(h.Log, reqID, op, "note lookup", err, "note_id", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	links, err := h.Links.ListForNote(r.Context(), r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "note_id", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(links))
	v1.WriteOKData(w, r, links)
}

// Revoke обрабатывает DELETE /v1/links/{token}. Только лектор.
// Идемпотентно: повторный отзыв и неизвестный токен — тоже 200.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	const op = "share.revoke"
	reqID := mw.RequestIDFromCtx(r.Context())

	if _, err := identity.RequireRole(r.Context(), domain.RoleLecturer); err != nil {
		logx.Error(h.Log, reqID, op, "role gate", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Links.Revoke(r.Context(), r.PathValue("token")); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, "revoked")
}
