package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GoalsRepo struct {
	base
}

func NewGoalsRepo(pool *pgxpool.Pool, prom *observability.Prom) *GoalsRepo {
	return &GoalsRepo{base{pool: pool, prom: prom}}
}

const goalColumns = `id, user_id, title, description, target_value, current_value, unit, category, target_date, status, created_at`

func scanGoal(row pgx.Row) (goal.Goal, error) {
	var g goal.Goal
	var targetDate time.Time
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.TargetValue, &g.CurrentValue,
		&g.Unit, &g.Category, &targetDate, &g.Status, &g.CreatedAt)
	g.TargetDate = calendar.FromTime(targetDate)
	return g, err
}

func (r *GoalsRepo) ListByUser(ctx context.Context, userID string) ([]goal.Goal, error) {
	out := make([]goal.Goal, 0)

	err := r.observe("goals.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+goalColumns+` FROM goals
			WHERE user_id = $1
			ORDER BY created_at DESC, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			g, err := scanGoal(rows)
			if err != nil {
				return err
			}
			out = append(out, g)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GoalsRepo) GetOwned(ctx context.Context, userID, id string) (goal.Goal, error) {
	var g goal.Goal

	err := r.observe("goals.get_owned", func() error {
		var err error
		g, err = scanGoal(r.pool.QueryRow(ctx,
			`SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal.Goal{}, goal.ErrNotFound
		}
		return goal.Goal{}, err
	}
	return g, nil
}

func (r *GoalsRepo) Create(ctx context.Context, g goal.Goal) error {
	err := r.observe("goals.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO goals (`+goalColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			g.ID, g.UserID, g.Title, g.Description, g.TargetValue, g.CurrentValue,
			g.Unit, g.Category, g.TargetDate.Time(), g.Status, g.CreatedAt,
		)
		return err
	})
	return ownerMissing(err)
}

func (r *GoalsRepo) Update(ctx context.Context, g goal.Goal) error {
	return r.execOwned(ctx, "goals.update", goal.ErrNotFound,
		`UPDATE goals
		SET title = $3,
			description = $4,
			target_value = $5,
			current_value = $6,
			unit = $7,
			category = $8,
			target_date = $9,
			status = $10
		WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Title, g.Description, g.TargetValue, g.CurrentValue,
		g.Unit, g.Category, g.TargetDate.Time(), g.Status,
	)
}

func (r *GoalsRepo) Delete(ctx context.Context, userID, id string) error {
	return r.execOwned(ctx, "goals.delete", goal.ErrNotFound,
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
}
