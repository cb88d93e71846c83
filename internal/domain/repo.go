package domain

import (
	"context"
	"time"
)

// Порты хранилища строк. Реализация — internal/infra/database/postgres.

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	UserByEmail(ctx context.Context, emailLower string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
	// Сидирование: вставляет строки только если таблица пуста.
	InsertIfEmpty(ctx context.Context, seed []User) error
}

type NotesRepo interface {
	CreateNote(ctx context.Context, n Note) (Note, error)
	NoteByID(ctx context.Context, id string) (Note, error)
	// Все конспекты, новые первыми.
	NotesList(ctx context.Context) ([]Note, error)
	NoteDelete(ctx context.Context, id string) error
}

type ShareLinksRepo interface {
	CreateLink(ctx context.Context, l ShareLink) (ShareLink, error)
	LinkByToken(ctx context.Context, token string) (ShareLink, error)
	// Все ссылки конспекта (включая отозванные и истёкшие), новые первыми.
	LinksByNote(ctx context.Context, noteID string) ([]ShareLink, error)
	// Ставит revoked_at только если он ещё NULL: первый отзыв фиксирует время.
	UpdateRevokedAt(ctx context.Context, token string, at time.Time) error
	// Каскад при удалении конспекта.
	RevokeAllForNote(ctx context.Context, noteID string, at time.Time) error
}

type AccessLogsRepo interface {
	// Append-only: чтение журнала ядру не нужно.
	AppendAccess(ctx context.Context, e AccessLog) error
}
