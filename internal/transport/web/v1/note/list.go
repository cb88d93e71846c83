package note

import (
	"net/http"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

// List обрабатывает GET /v1/notes — дашборд, новые первыми. Любая роль.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "note.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	if _, err := identity.RequireUser(r.Context()); err != nil {
		logx.Error(h.Log, reqID, op, "unauthorized", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	notes, err := h.Notes.NotesList(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(notes))
	v1.WriteOKData(w, r, notes)
}

// Get обрабатывает GET /v1/notes/{id} — метаданные конспекта.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "note.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	if _, err := identity.RequireUser(r.Context()); err != nil {
		logx.Error(h.Log, reqID, op, "unauthorized", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	n, err := h.Notes.NoteByID(r.Context(), r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "note lookup", err, "note_id", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID)
	v1.WriteOKResponse(w, r, n)
}
