package postgres

import (
	"context"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// AppendAccess — только вставка; ядро журнал не читает и не меняет.
func (r *PGRepo) AppendAccess(ctx context.Context, e domain.AccessLog) error {
	q := r.qb().Insert(r.table("access_logs")).
		Columns("user_id", "note_id", "share_token", "ts").
		Values(e.UserID, e.NoteID, e.ShareToken, e.Timestamp)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AppendAccess", sqlStr, args)

	start := time.Now()
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		r.logger.Printf("AppendAccess exec error after %s: %v", time.Since(start), err)
		return err
	}
	r.logger.Printf("AppendAccess ok in %s note=%s", time.Since(start), e.NoteID)
	return nil
}
