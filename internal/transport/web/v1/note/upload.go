package note

import (
	"net/http"
	"strings"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/randid"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/identity"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/logx"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/mw"
	v1 "github.com/Brian-Gachiri/secure-academic-notes/internal/transport/web/v1"
)

const uploadMemoryLimit = 16 << 20

// Upload обрабатывает POST /v1/notes: multipart с title и PDF-файлом.
// Только лектор; путь в хранилище — "<note id>.pdf", перезаписи нет.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "note.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	user, err := identity.RequireRole(r.Context(), domain.RoleLecturer)
	if err != nil {
		logx.Error(h.Log, reqID, op, "role gate", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		logx.Error(h.Log, reqID, op, "bad multipart", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		logx.Error(h.Log, reqID, op, "empty title", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer file.Close()

	// принимаем только PDF — и по заявленному типу, и по расширению
	if ct := header.Header.Get("Content-Type"); ct != "application/pdf" ||
		!strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		logx.Error(h.Log, reqID, op, "not a pdf", domain.ErrBadParams, "content_type", ct, "filename", header.Filename)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	noteID := randid.New("note")
	storagePath := noteID + ".pdf"

	if err := h.Storage.Upload(r.Context(), storagePath, file, header.Size, "application/pdf"); err != nil {
		logx.Error(h.Log, reqID, op, "storage upload failed", err, "path", storagePath)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	n, err := h.Notes.CreateNote(r.Context(), domain.Note{
		ID:          noteID,
		Title:       title,
		Filename:    header.Filename,
		StoragePath: storagePath,
		UploadedBy:  user.ID,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "db insert failed", err, "note_id", noteID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID, "title", n.Title)
	v1.WriteOKResponse(w, r, n)
}
