package note

import (
	"net/http"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

// Delete обрабатывает DELETE /v1/notes/{id}. Только лектор-загрузивший.
// Каскад: сперва отзываем все ссылки конспекта, затем блоб, затем строку —
// даже при падении на полпути ссылки уже мертвы.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "note.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "path", r.URL.Path)

	user, err := identity.RequireRole(r.Context(), domain.RoleLecturer)
	if err != nil {
		logx.Error(h.Log, reqID, op, "role gate", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	n, err := h.Notes.NoteByID(r.Context(), r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "note lookup", err, "note_id", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}
	if n.UploadedBy != user.ID {
		logx.Error(h.Log, reqID, op, "not the uploader", domain.ErrForbidden, "note_id", n.ID)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Links.RevokeAllForNote(r.Context(), n.ID); err != nil {
		logx.Error(h.Log, reqID, op, "revoke cascade failed", err, "note_id", n.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Storage.Delete(r.Context(), n.StoragePath); err != nil {
		logx.Error(h.Log, reqID, op, "blob delete failed", err, "note_id", n.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Notes.NoteDelete(r.Context(), n.ID); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "note_id", n.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID)
	v1.WriteOKData(w, r, "deleted")
}
