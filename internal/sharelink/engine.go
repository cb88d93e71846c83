package sharelink

import (
	"context"
	"fmt"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/randid"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// Engine — жизненный цикл ссылок доступа: создание, проверка, отзыв, список.
type Engine struct {
	Links domain.ShareLinksRepo
	Notes domain.NotesRepo
	now   func() time.Time
}

func NewEngine(links domain.ShareLinksRepo, notes domain.NotesRepo) *Engine {
	return &Engine{Links: links, Notes: notes, now: time.Now}
}

// NewEngineWithClock — для тестов с управляемым временем.
func NewEngineWithClock(links domain.ShareLinksRepo, notes domain.NotesRepo, now func() time.Time) *Engine {
	return &Engine{Links: links, Notes: notes, now: now}
}

// Create выпускает свежий токен для существующего конспекта.
// Ретраев уникальности нет: 32 байта энтропии делают коллизию ничтожной.
func (e *Engine) Create(ctx context.Context, noteID string, createdBy domain.UserID, spec ExpirySpec) (domain.ShareLink, error) {
	if _, err := e.Notes.NoteByID(ctx, noteID); err != nil {
		return domain.ShareLink{}, fmt.Errorf("note lookup: %w", err)
	}

	now := e.now().UTC()
	link := domain.ShareLink{
		Token:     randid.Token(),
		NoteID:    noteID,
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: spec.ExpiresAt(now),
	}
	return e.Links.CreateLink(ctx, link)
}

// Revoke идемпотентен: повторный отзыв и несуществующий токен — no-op.
// Первый отзыв фиксирует revoked_at, репозиторий не трогает уже отозванные строки.
func (e *Engine) Revoke(ctx context.Context, token string) error {
	return e.Links.UpdateRevokedAt(ctx, token, e.now().UTC())
}

// RevokeAllForNote отзывает все живые ссылки конспекта — каскад при удалении.
func (e *Engine) RevokeAllForNote(ctx context.Context, noteID string) error {
	return e.Links.RevokeAllForNote(ctx, noteID, e.now().UTC())
}

// Validate возвращает ссылку, если она существует, не отозвана и не истекла.
// Отсутствие, отзыв и истечение наружу неразличимы — просто ErrNotFound.
func (e *Engine) Validate(ctx context.Context, token string) (domain.ShareLink, error) {
	l, err := e.Links.LinkByToken(ctx, token)
	if err != nil {
		return domain.ShareLink{}, domain.ErrNotFound
	}
	if !l.ValidAt(e.now()) {
		return domain.ShareLink{}, domain.ErrNotFound
	}
	return l, nil
}

// ListForNote — все ссылки конспекта для аудита, включая отозванные и
// истёкшие, новые первыми. Гейт по роли — на вызывающей стороне.
func (e *Engine) ListForNote(ctx context.Context, noteID string) ([]domain.ShareLink, error) {
	return e.Links.LinksByNote(ctx, noteID)
}
