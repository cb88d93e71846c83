package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

func (r *PGRepo) CreateLink(ctx context.Context, l domain.ShareLink) (domain.ShareLink, error) {
	q := r.qb().Insert(r.table("share_links")).
		Columns("token", "note_id", "created_by", "created_at", "expires_at").
		Values(l.Token, l.NoteID, l.CreatedBy, l.CreatedAt, l.ExpiresAt).
		Suffix("RETURNING token, note_id, created_by, created_at, expires_at, revoked_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateLink", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.ShareLink
	if err := row.Scan(&out.Token, &out.NoteID, &out.CreatedBy, &out.CreatedAt, &out.ExpiresAt, &out.RevokedAt); err != nil {
		r.logger.Printf("CreateLink scan error after %s: %v", time.Since(start), err)
		return domain.ShareLink{}, err
	}
	r.logger.Printf("CreateLink ok in %s note=%s", time.Since(start), out.NoteID)
	return out, nil
}

func (r *PGRepo) LinkByToken(ctx context.Context, token string) (domain.ShareLink, error) {
	q := r.qb().Select("token", "note_id", "created_by", "created_at", "expires_at", "revoked_at").
		From(r.table("share_links")).
		Where(sq.Eq{"token": token})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LinkByToken", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var l domain.ShareLink
	if err := row.Scan(&l.Token, &l.NoteID, &l.CreatedBy, &l.CreatedAt, &l.ExpiresAt, &l.RevokedAt); err != nil {
		r.logger.Printf("LinkByToken scan error after %s: %v", time.Since(start), err)
		return domain.ShareLink{}, mapNoRows(err)
	}
	r.logger.Printf("LinkByToken ok in %s note=%s", time.Since(start), l.NoteID)
	return l, nil
}

func (r *PGRepo) LinksByNote(ctx context.Context, noteID string) ([]domain.ShareLink, error) {
	q := r.qb().Select("token", "note_id", "created_by", "created_at", "expires_at", "revoked_at").
		From(r.table("share_links")).
		Where(sq.Eq{"note_id": noteID}).
		OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LinksByNote", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("LinksByNote query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.ShareLink
	for rows.Next() {
		var l domain.ShareLink
		if err := rows.Scan(&l.Token, &l.NoteID, &l.CreatedBy, &l.CreatedAt, &l.ExpiresAt, &l.RevokedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("LinksByNote ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

// UpdateRevokedAt ставит метку отзыва один раз: уже отозванные строки не
// трогаем, чтобы повторный отзыв не сдвигал время. Ноль строк — не ошибка.
func (r *PGRepo) UpdateRevokedAt(ctx context.Context, token string, at time.Time) error {
	q := r.qb().Update(r.table("share_links")).
		Set("revoked_at", at).
		Where(sq.And{sq.Eq{"token": token}, sq.Eq{"revoked_at": nil}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateRevokedAt", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UpdateRevokedAt exec error after %s: %v", time.Since(start), err)
		return err
	}
	r.logger.Printf("UpdateRevokedAt ok in %s token=%s affected=%d", time.Since(start), token, tag.RowsAffected())
	return nil
}

// RevokeAllForNote — каскад при удалении конспекта.
func (r *PGRepo) RevokeAllForNote(ctx context.Context, noteID string, at time.Time) error {
	q := r.qb().Update(r.table("share_links")).
		Set("revoked_at", at).
		Where(sq.And{sq.Eq{"note_id": noteID}, sq.Eq{"revoked_at": nil}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("RevokeAllForNote", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("RevokeAllForNote exec error after %s: %v", time.Since(start), err)
		return err
	}
	r.logger.Printf("RevokeAllForNote ok in %s note=%s affected=%d", time.Since(start), noteID, tag.RowsAffected())
	return nil
}
