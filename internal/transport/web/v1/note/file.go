package note

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

// File обрабатывает GET /v1/notes/{id}/file — PDF целиком для вьюера.
// Успешная отдача даёт ровно одну строку журнала; отказ журнала валит запрос.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	const op = "note.file"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "path", r.URL.Path)

	user, err := identity.RequireUser(r.Context())
	if err != nil {
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

	rc, size, contentType, err := h.Storage.Download(r.Context(), n.StoragePath)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage download failed", err, "note_id", n.ID)
		v1.WriteDomainError(w, r, err)
		return
	}
	defer rc.Close()

	// журнал до отдачи тела: не писали строку — не отдали файл
	uid := user.ID
	if err := h.Access.RecordView(r.Context(), &uid, n.ID, nil); err != nil {
		logx.Error(h.Log, reqID, op, "access log failed", err, "note_id", n.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	if contentType == "" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+n.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID, "len", size, "user_id", user.ID)
}
