package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	base
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{base{pool: pool, prom: prom}}
}

const userColumns = `id, email, password_hash, name, age, gender, height, weight, fitness_goals, created_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Age,
		&u.Gender,
		&u.Height,
		&u.Weight,
		&u.FitnessGoals,
		&u.CreatedAt,
	)
	if u.FitnessGoals == nil {
		u.FitnessGoals = []string{}
	}
	return u, err
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	goals := u.FitnessGoals
	if goals == nil {
		goals = []string{}
	}

	err := r.observe("users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, name, age, gender, height, weight, fitness_goals, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			u.ID, u.Email, u.PasswordHash, u.Name, u.Age, u.Gender, u.Height, u.Weight, goals, u.CreatedAt,
		)
		return err
	})

	if IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UsersRepo) getOne(ctx context.Context, op, query string, arg string) (user.User, error) {
	var u user.User

	err := r.observe(op, func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx, query, arg))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u user.User) error {
	goals := u.FitnessGoals
	if goals == nil {
		goals = []string{}
	}

	var affected int64
	err := r.observe("users.update", func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE users
			SET name = $2,
				age = $3,
				gender = $4,
				height = $5,
				weight = $6,
				fitness_goals = $7
			WHERE id = $1`,
			u.ID, u.Name, u.Age, u.Gender, u.Height, u.Weight, goals,
		)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for the user's records.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.observe("users.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}
