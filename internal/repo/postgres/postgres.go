// Package postgres implements the repositories on PostgreSQL through pgx.
// Every statement runs under a logical op name for the DB metrics.
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type base struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func (b base) observe(op string, fn func() error) error {
	return b.prom.ObserveDB(op, fn)
}

// execOwned runs a write that must touch exactly the caller's row; zero rows yields missing.
func (b base) execOwned(ctx context.Context, op string, missing error, sql string, args ...any) error {
	var affected int64
	err := b.observe(op, func() error {
		tag, err := b.pool.Exec(ctx, sql, args...)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ownerMissing maps an insert whose user_id no longer references a user
// onto user.ErrNotFound.
func ownerMissing(err error) error {
	if IsForeignKeyViolation(err) {
		return user.ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using the default escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
