package postgres

import (
	"context"
	"strings"

	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FoodsRepo struct {
	base
}

func NewFoodsRepo(pool *pgxpool.Pool, prom *observability.Prom) *FoodsRepo {
	return &FoodsRepo{base{pool: pool, prom: prom}}
}

func (r *FoodsRepo) Search(ctx context.Context, query string, limit int) ([]nutrition.Food, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	out := make([]nutrition.Food, 0, limit)

	err := r.observe("foods.search", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, calories, protein, carbs, fats
			FROM food_database
			WHERE name ILIKE $1
			ORDER BY id
			LIMIT $2`, pattern, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var f nutrition.Food
			if err := rows.Scan(&f.ID, &f.Name, &f.Calories, &f.Protein, &f.Carbs, &f.Fats); err != nil {
				return err
			}
			out = append(out, f)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.observe("foods.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM food_database`).Scan(&n)
	})
	return n, err
}

// InsertMany loads the reference rows in one batch; ids come from the serial column.
func (r *FoodsRepo) InsertMany(ctx context.Context, foods []nutrition.Food) error {
	return r.observe("foods.insert_many", func() error {
		batch := &pgx.Batch{}
		for _, f := range foods {
			batch.Queue(
				`INSERT INTO food_database (name, calories, protein, carbs, fats) VALUES ($1,$2,$3,$4,$5)`,
				f.Name, f.Calories, f.Protein, f.Carbs, f.Fats,
			)
		}
		return r.pool.SendBatch(ctx, batch).Close()
	})
}
