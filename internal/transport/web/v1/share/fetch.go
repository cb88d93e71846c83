package share

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

// Fetch обрабатывает GET /share/{token} — анонимная отдача PDF по
// bearer-токену, без сессии. Несуществующий, отозванный и истёкший токен
// неразличимы: всегда not found. Успех — ровно одна строка журнала с
// user_id NULL и токеном.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	const op = "share.fetch"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	token := r.PathValue("token")
	link, err := h.Links.Validate(r.Context(), token)
	if err != nil {
		logx.Error(h.Log, reqID, op, "invalid token", err)
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	n, err := h.Notes.NoteByID(r.Context(), link.NoteID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "note lookup", err, "note_id", link.NoteID)
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

	if err := h.Access.RecordView(r.Context(), nil, n.ID, &link.Token); err != nil {
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

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID, "len", size)
}
