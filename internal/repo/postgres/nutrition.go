package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NutritionRepo struct {
	base
}

func NewNutritionRepo(pool *pgxpool.Pool, prom *observability.Prom) *NutritionRepo {
	return &NutritionRepo{base{pool: pool, prom: prom}}
}

const nutritionColumns = `id, user_id, food_name, calories, protein, carbs, fats, serving, date, meal_type, created_at`

func scanNutrition(row pgx.Row) (nutrition.Entry, error) {
	var e nutrition.Entry
	var date time.Time
	err := row.Scan(&e.ID, &e.UserID, &e.FoodName, &e.Calories, &e.Protein, &e.Carbs,
		&e.Fats, &e.Serving, &date, &e.MealType, &e.CreatedAt)
	e.Date = calendar.FromTime(date)
	return e, err
}

func (r *NutritionRepo) ListByUser(ctx context.Context, userID string) ([]nutrition.Entry, error) {
	out := make([]nutrition.Entry, 0)

	err := r.observe("nutrition.list_by_user", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+nutritionColumns+` FROM nutrition_entries
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanNutrition(rows)
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

func (r *NutritionRepo) GetOwned(ctx context.Context, userID, id string) (nutrition.Entry, error) {
	var e nutrition.Entry

	err := r.observe("nutrition.get_owned", func() error {
		var err error
		e, err = scanNutrition(r.pool.QueryRow(ctx,
			`SELECT `+nutritionColumns+` FROM nutrition_entries WHERE id = $1 AND user_id = $2`, id, userID))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nutrition.Entry{}, nutrition.ErrNotFound
		}
		return nutrition.Entry{}, err
	}
	return e, nil
}

func (r *NutritionRepo) Create(ctx context.Context, e nutrition.Entry) error {
	err := r.observe("nutrition.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO nutrition_entries (`+nutritionColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			e.ID, e.UserID, e.FoodName, e.Calories, e.Protein, e.Carbs,
			e.Fats, e.Serving, e.Date.Time(), e.MealType, e.CreatedAt,
		)
		return err
	})
	return ownerMissing(err)
}

func (r *NutritionRepo) Update(ctx context.Context, e nutrition.Entry) error {
	return r.execOwned(ctx, "nutrition.update", nutrition.ErrNotFound,
		`UPDATE nutrition_entries
		SET food_name = $3,
			calories = $4,
			protein = $5,
			carbs = $6,
			fats = $7,
			serving = $8,
			date = $9,
			meal_type = $10
		WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.FoodName, e.Calories, e.Protein, e.Carbs,
		e.Fats, e.Serving, e.Date.Time(), e.MealType,
	)
}

func (r *NutritionRepo) Delete(ctx context.Context, userID, id string) error {
	return r.execOwned(ctx, "nutrition.delete", nutrition.ErrNotFound,
		`DELETE FROM nutrition_entries WHERE id = $1 AND user_id = $2`, id, userID)
}
