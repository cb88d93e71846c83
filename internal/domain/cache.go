package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyViewDedup(viewer, noteID string) string { return "viewed:" + viewer + ":" + noteID }

// Минимальный k/v интерфейс. Реализация — Redis.
// Нужен только для дедупликации записей журнала просмотров и health-пинга.
type Cache interface {
	// true — ключ поставлен (первый просмотр в окне), false — уже был.
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Ping(context.Context) error
	Close()
}
