package accesslog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// Окно, в котором повторные просмотры той же пары (viewer, note)
// не плодят строки журнала.
const dedupTTLSeconds = 60

// Recorder пишет журнал просмотров. Контракт: успешная отдача PDF — ровно
// одна строка; ошибка записи валит запрос, а не глотается.
type Recorder struct {
	Logs  domain.AccessLogsRepo
	Cache domain.Cache // nil — дедупликация выключена
	Log   *log.Logger
	now   func() time.Time
}

func NewRecorder(logs domain.AccessLogsRepo, cache domain.Cache, logger *log.Logger) *Recorder {
	return &Recorder{Logs: logs, Cache: cache, Log: logger, now: time.Now}
}

// RecordView добавляет запись о просмотре. userID nil — анонимный доступ по
// ссылке, тогда shareToken обязан быть не nil (и наоборот для входа с дашборда).
func (r *Recorder) RecordView(ctx context.Context, userID *domain.UserID, noteID string, shareToken *string) error {
	if r.Cache != nil {
		// дебаунс повторных просмотров; отказ Redis не причина терять строку
		first, err := r.Cache.SetNX(ctx, domain.CacheKeyViewDedup(r.viewerKey(userID, shareToken), noteID), []byte("1"), dedupTTLSeconds)
		if err != nil {
			r.Log.Printf("dedup check failed, writing anyway: %v", err)
		} else if !first {
			r.Log.Printf("duplicate view suppressed note=%s", noteID)
			return nil
		}
	}

	entry := domain.AccessLog{
		UserID:     userID,
		NoteID:     noteID,
		ShareToken: shareToken,
		Timestamp:  r.now().UTC(),
	}
	if err := r.Logs.AppendAccess(ctx, entry); err != nil {
		return fmt.Errorf("append access log: %w", err)
	}
	return nil
}

func (r *Recorder) viewerKey(userID *domain.UserID, shareToken *string) string {
	if userID != nil {
		return "u:" + *userID
	}
	if shareToken != nil {
		return "t:" + *shareToken
	}
	return "anon"
}
