package workout

import (
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/google/uuid"
)

type Workout struct {
	ID             string
	UserID         string
	ExerciseName   string
	ExerciseType   string
	Sets           int
	Reps           int
	Duration       int // minutes
	CaloriesBurned int
	Date           calendar.Date
	Notes          string
	CreatedAt      time.Time
}

var ErrNotFound = errors.New("workout not found")

type CreateRequest struct {
	ExerciseName   string  `json:"exerciseName" binding:"required,max=100"`
	ExerciseType   string  `json:"exerciseType" binding:"required,max=50"`
	Sets           *int    `json:"sets" binding:"omitempty,min=0"`
	Reps           *int    `json:"reps" binding:"omitempty,min=0"`
	Duration       *int    `json:"duration" binding:"required,min=0"`
	CaloriesBurned *int    `json:"caloriesBurned" binding:"omitempty,min=0"`
	Date           string  `json:"date" binding:"required,datetime=2006-01-02"`
	Notes          *string `json:"notes"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	ExerciseName   *string `json:"exerciseName" binding:"omitempty,min=1,max=100"`
	ExerciseType   *string `json:"exerciseType" binding:"omitempty,min=1,max=50"`
	Sets           *int    `json:"sets" binding:"omitempty,min=0"`
	Reps           *int    `json:"reps" binding:"omitempty,min=0"`
	Duration       *int    `json:"duration" binding:"omitempty,min=0"`
	CaloriesBurned *int    `json:"caloriesBurned" binding:"omitempty,min=0"`
	Date           *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes          *string `json:"notes"`
}

// New validates req and fills defaults: sets and reps 1, calories 0, notes empty.
func New(userID string, req CreateRequest, now time.Time) (Workout, error) {
	if err := domain.RequireText("exerciseName", req.ExerciseName); err != nil {
		return Workout{}, err
	}
	if err := domain.RequireText("exerciseType", req.ExerciseType); err != nil {
		return Workout{}, err
	}
	if req.Duration == nil {
		return Workout{}, domain.Required("duration")
	}

	date, err := domain.ParseDate("date", req.Date)
	if err != nil {
		return Workout{}, err
	}

	return Workout{
		ID:             uuid.NewString(),
		UserID:         userID,
		ExerciseName:   req.ExerciseName,
		ExerciseType:   req.ExerciseType,
		Sets:           valueOr(req.Sets, 1),
		Reps:           valueOr(req.Reps, 1),
		Duration:       *req.Duration,
		CaloriesBurned: valueOr(req.CaloriesBurned, 0),
		Date:           date,
		Notes:          valueOr(req.Notes, ""),
		CreatedAt:      now.UTC(),
	}, nil
}

func (r UpdateRequest) Apply(w *Workout) error {
	if err := domain.RequireTextIfSet("exerciseName", r.ExerciseName); err != nil {
		return err
	}
	if err := domain.RequireTextIfSet("exerciseType", r.ExerciseType); err != nil {
		return err
	}
	// parse first so a bad date leaves w untouched
	if r.Date != nil {
		d, err := domain.ParseDate("date", *r.Date)
		if err != nil {
			return err
		}
		w.Date = d
	}

	if r.ExerciseName != nil {
		w.ExerciseName = *r.ExerciseName
	}
	if r.ExerciseType != nil {
		w.ExerciseType = *r.ExerciseType
	}
	if r.Sets != nil {
		w.Sets = *r.Sets
	}
	if r.Reps != nil {
		w.Reps = *r.Reps
	}
	if r.Duration != nil {
		w.Duration = *r.Duration
	}
	if r.CaloriesBurned != nil {
		w.CaloriesBurned = *r.CaloriesBurned
	}
	if r.Notes != nil {
		w.Notes = *r.Notes
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
