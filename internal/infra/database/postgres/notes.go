package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

func (r *PGRepo) CreateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	q := r.qb().Insert(r.table("notes")).
		Columns("id", "title", "filename", "storage_path", "uploaded_by").
		Values(n.ID, n.Title, n.Filename, n.StoragePath, n.UploadedBy).
		Suffix("RETURNING id, title, filename, storage_path, uploaded_by, created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateNote", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.Note
	if err := row.Scan(&out.ID, &out.Title, &out.Filename, &out.StoragePath, &out.UploadedBy, &out.CreatedAt); err != nil {
		r.logger.Printf("CreateNote scan error after %s: %v", time.Since(start), err)
		return domain.Note{}, err
	}
	r.logger.Printf("CreateNote ok in %s id=%s title=%q", time.Since(start), out.ID, out.Title)
	return out, nil
}

func (r *PGRepo) NoteByID(ctx context.Context, id string) (domain.Note, error) {
	q := r.qb().Select("id", "title", "filename", "storage_path", "uploaded_by", "created_at").
		From(r.table("notes")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("NoteByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var n domain.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Filename, &n.StoragePath, &n.UploadedBy, &n.CreatedAt); err != nil {
		r.logger.Printf("NoteByID scan error after %s: %v", time.Since(start), err)
		return domain.Note{}, mapNoRows(err)
	}
	r.logger.Printf("NoteByID ok in %s id=%s", time.Since(start), n.ID)
	return n, nil
}

func (r *PGRepo) NotesList(ctx context.Context) ([]domain.Note, error) {
	q := r.qb().Select("id", "title", "filename", "storage_path", "uploaded_by", "created_at").
		From(r.table("notes")).
		OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("NotesList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("NotesList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Filename, &n.StoragePath, &n.UploadedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("NotesList ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

func (r *PGRepo) NoteDelete(ctx context.Context, id string) error {
	q := r.qb().Delete(r.table("notes")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("NoteDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("NoteDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("NoteDelete ok in %s id=%s", time.Since(start), id)
	return nil
}
