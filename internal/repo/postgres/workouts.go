package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkoutsRepo struct {
	base
}

func NewWorkoutsRepo(pool *pgxpool.Pool, prom *observability.Prom) *WorkoutsRepo {
	return &WorkoutsRepo{base{pool: pool, prom: prom}}
}

const workoutColumns = `id, user_id, exercise_name, exercise_type, sets, reps, duration, calories_burned, date, notes, created_at`

func scanWorkout(row pgx.Row) (workout.Workout, error) {
	var w workout.Workout
	var date time.Time
	err := row.Scan(&w.ID, &w.UserID, &w.ExerciseName, &w.ExerciseType, &w.Sets, &w.Reps,
		&w.Duration, &w.CaloriesBurned, &date, &w.Notes, &w.CreatedAt)
	w.Date = calendar.FromTime(date)
	return w, err
}

func (r *WorkoutsRepo) ListByUser(ctx context.Context, userID string) ([]workout.Workout, error) {
	out := make([]workout.Workout, 0)

	err := r.observe("workouts.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+workoutColumns+` FROM workouts
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			w, err := scanWorkout(rows)
			if err != nil {
				return err
			}
			out = append(out, w)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WorkoutsRepo) GetOwned(ctx context.Context, userID, id string) (workout.Workout, error) {
	var w workout.Workout

	err := r.observe("workouts.get_owned", func() error {
		var err error
		w, err = scanWorkout(r.pool.QueryRow(ctx,
			`SELECT `+workoutColumns+` FROM workouts WHERE id = $1 AND user_id = $2`, id, userID))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workout.Workout{}, workout.ErrNotFound
		}
		return workout.Workout{}, err
	}
	return w, nil
}

func (r *WorkoutsRepo) Create(ctx context.Context, w workout.Workout) error {
	err := r.observe("workouts.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO workouts (`+workoutColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			w.ID, w.UserID, w.ExerciseName, w.ExerciseType, w.Sets, w.Reps,
			w.Duration, w.CaloriesBurned, w.Date.Time(), w.Notes, w.CreatedAt,
		)
		return err
	})
	return ownerMissing(err)
}

func (r *WorkoutsRepo) Update(ctx context.Context, w workout.Workout) error {
	return r.execOwned(ctx, "workouts.update", workout.ErrNotFound,
		`UPDATE workouts
		SET exercise_name = $3,
			exercise_type = $4,
			sets = $5,
			reps = $6,
			duration = $7,
			calories_burned = $8,
			date = $9,
			notes = $10
		WHERE id = $1 AND user_id = $2`,
		w.ID, w.UserID, w.ExerciseName, w.ExerciseType, w.Sets, w.Reps,
		w.Duration, w.CaloriesBurned, w.Date.Time(), w.Notes,
	)
}

func (r *WorkoutsRepo) Delete(ctx context.Context, userID, id string) error {
	return r.execOwned(ctx, "workouts.delete", workout.ErrNotFound,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
}
