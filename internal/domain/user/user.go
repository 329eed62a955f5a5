package user

import (
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/google/uuid"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Age          *int
	Gender       *string
	Height       *float64 // cm
	Weight       *float64 // kg
	FitnessGoals []string
	CreatedAt    time.Time
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type RegisterRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=6"`
	Name         string   `json:"name" binding:"required"`
	Age          *int     `json:"age" binding:"omitempty,min=0,max=150"`
	Gender       *string  `json:"gender" binding:"omitempty,max=20"`
	Height       *float64 `json:"height" binding:"omitempty,gt=0"`
	Weight       *float64 `json:"weight" binding:"omitempty,gt=0"`
	FitnessGoals []string `json:"fitnessGoals"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Age          *int      `json:"age" binding:"omitempty,min=0,max=150"`
	Gender       *string   `json:"gender" binding:"omitempty,max=20"`
	Height       *float64  `json:"height" binding:"omitempty,gt=0"`
	Weight       *float64  `json:"weight" binding:"omitempty,gt=0"`
	FitnessGoals *[]string `json:"fitnessGoals"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New builds a user from a registration; the password hash is supplied by the caller.
func New(req RegisterRequest, passwordHash string, now time.Time) (User, error) {
	if err := domain.RequireText("email", req.Email); err != nil {
		return User{}, err
	}
	if err := domain.RequireText("name", req.Name); err != nil {
		return User{}, err
	}

	goals := req.FitnessGoals
	if goals == nil {
		goals = []string{}
	}

	return User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Gender:       req.Gender,
		Height:       req.Height,
		Weight:       req.Weight,
		FitnessGoals: goals,
		CreatedAt:    now.UTC(),
	}, nil
}

func (r UpdateProfileRequest) Apply(u *User) error {
	if r.Name != nil {
		if err := domain.RequireText("name", *r.Name); err != nil {
			return err
		}
		u.Name = *r.Name
	}
	if r.Age != nil {
		u.Age = r.Age
	}
	if r.Gender != nil {
		u.Gender = r.Gender
	}
	if r.Height != nil {
		u.Height = r.Height
	}
	if r.Weight != nil {
		u.Weight = r.Weight
	}
	if r.FitnessGoals != nil {
		goals := *r.FitnessGoals
		if goals == nil {
			goals = []string{}
		}
		u.FitnessGoals = goals
	}
	return nil
}
