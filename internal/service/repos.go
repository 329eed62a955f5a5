package service

import (
	"context"

	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/user"
)

type UserRepo interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id string) error
}

// OwnedRepo stores records that belong to exactly one user. GetOwned, Update
// and Delete report the entity's ErrNotFound when no row matches (id, userID).
type OwnedRepo[T any] interface {
	ListByUser(ctx context.Context, userID string) ([]T, error)
	GetOwned(ctx context.Context, userID, id string) (T, error)
	Create(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, userID, id string) error
}

type FoodRepo interface {
	Search(ctx context.Context, query string, limit int) ([]nutrition.Food, error)
}
