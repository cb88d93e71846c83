package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

func (r *PGRepo) UserByEmail(ctx context.Context, emailLower string) (domain.User, error) {
	q := r.qb().Select("id", "name", "email", "role", "pass_hash", "pass_salt", "created_at").
		From(r.table("users")).
		Where(sq.Eq{"email": emailLower})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByEmail", sqlStr, args)

	start := time.Now()
	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UserByEmail scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapNoRows(err)
	}
	r.logger.Printf("UserByEmail ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select("id", "name", "email", "role", "pass_hash", "pass_salt", "created_at").
		From(r.table("users")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByID", sqlStr, args)

	start := time.Now()
	u, err := r.scanUser(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UserByID scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapNoRows(err)
	}
	r.logger.Printf("UserByID ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

// InsertIfEmpty сидирует пользователей только в пустую таблицу.
// Прототип: путей обновления/удаления пользователей нет.
func (r *PGRepo) InsertIfEmpty(ctx context.Context, seed []domain.User) error {
	countQ := r.qb().Select("COUNT(*)").From(r.table("users"))
	sqlStr, args, _ := countQ.ToSql()
	r.logSQL("InsertIfEmpty.count", sqlStr, args)

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		r.logger.Printf("InsertIfEmpty skipped: %d users present", n)
		return nil
	}

	ins := r.qb().Insert(r.table("users")).
		Columns("id", "name", "email", "role", "pass_hash", "pass_salt")
	for _, u := range seed {
		ins = ins.Values(u.ID, u.Name, u.Email, string(u.Role), u.PassHash, u.PassSalt)
	}
	sqlStr, args, _ = ins.ToSql()
	r.logSQL("InsertIfEmpty.insert", sqlStr, args)

	start := time.Now()
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		r.logger.Printf("InsertIfEmpty exec error after %s: %v", time.Since(start), err)
		return err
	}
	r.logger.Printf("InsertIfEmpty ok in %s seeded=%d", time.Since(start), len(seed))
	return nil
}

func (r *PGRepo) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.PassHash, &u.PassSalt, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

// mapNoRows переводит pgx.ErrNoRows в доменный ErrNotFound.
func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
