package service

import (
	"context"
	"errors"

	"github.com/geocoder89/fittrack/internal/domain/user"
)

type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, userID string) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, notFound("user", err)
		}
		return user.User{}, internal("load user", err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if err := req.Apply(&u); err != nil {
		return user.User{}, fromDomain("update profile", err)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, notFound("user", err)
		}
		return user.User{}, internal("update profile", err)
	}
	return u, nil
}

// Delete removes the user and, through the store, everything they own.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return notFound("user", err)
		}
		return internal("delete user", err)
	}
	return nil
}
