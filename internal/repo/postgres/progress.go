package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressRepo struct {
	base
}

func NewProgressRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProgressRepo {
	return &ProgressRepo{base{pool: pool, prom: prom}}
}

const progressColumns = `id, user_id, date, weight, steps, distance, active_minutes, notes, created_at`

func scanProgress(row pgx.Row) (progress.Entry, error) {
	var e progress.Entry
	var date time.Time
	err := row.Scan(&e.ID, &e.UserID, &date, &e.Weight, &e.Steps, &e.Distance,
		&e.ActiveMinutes, &e.Notes, &e.CreatedAt)
	e.Date = calendar.FromTime(date)
	return e, err
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID string) ([]progress.Entry, error) {
	out := make([]progress.Entry, 0)

	err := r.observe("progress.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+progressColumns+` FROM progress_entries
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanProgress(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProgressRepo) GetOwned(ctx context.Context, userID, id string) (progress.Entry, error) {
	var e progress.Entry

	err := r.observe("progress.get_owned", func() error {
		var err error
		e, err = scanProgress(r.pool.QueryRow(ctx,
			`SELECT `+progressColumns+` FROM progress_entries WHERE id = $1 AND user_id = $2`, id, userID))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return progress.Entry{}, progress.ErrNotFound
		}
		return progress.Entry{}, err
	}
	return e, nil
}

func (r *ProgressRepo) Create(ctx context.Context, e progress.Entry) error {
	err := r.observe("progress.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO progress_entries (`+progressColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			e.ID, e.UserID, e.Date.Time(), e.Weight, e.Steps, e.Distance,
			e.ActiveMinutes, e.Notes, e.CreatedAt,
		)
		return err
	})
	return ownerMissing(err)
}

func (r *ProgressRepo) Update(ctx context.Context, e progress.Entry) error {
	return r.execOwned(ctx, "progress.update", progress.ErrNotFound,
		`UPDATE progress_entries
		SET date = $3,
			weight = $4,
			steps = $5,
			distance = $6,
			active_minutes = $7,
			notes = $8
		WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Date.Time(), e.Weight, e.Steps, e.Distance,
		e.ActiveMinutes, e.Notes,
	)
}

func (r *ProgressRepo) Delete(ctx context.Context, userID, id string) error {
	return r.execOwned(ctx, "progress.delete", progress.ErrNotFound,
		`DELETE FROM progress_entries WHERE id = $1 AND user_id = $2`, id, userID)
}
