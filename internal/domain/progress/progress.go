package progress

import (
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/google/uuid"
)

type Entry struct {
	ID            string
	UserID        string
	Date          calendar.Date
	Weight        *float64 // kg
	Steps         int
	Distance      float64 // km
	ActiveMinutes int
	Notes         string
	CreatedAt     time.Time
}

var ErrNotFound = errors.New("progress entry not found")

type CreateRequest struct {
	Date          string   `json:"date" binding:"required,datetime=2006-01-02"`
	Weight        *float64 `json:"weight" binding:"omitempty,gt=0"`
	Steps         *int     `json:"steps" binding:"omitempty,min=0"`
	Distance      *float64 `json:"distance" binding:"omitempty,min=0"`
	ActiveMinutes *int     `json:"activeMinutes" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	Date          *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Weight        *float64 `json:"weight" binding:"omitempty,gt=0"`
	Steps         *int     `json:"steps" binding:"omitempty,min=0"`
	Distance      *float64 `json:"distance" binding:"omitempty,min=0"`
	ActiveMinutes *int     `json:"activeMinutes" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

func New(userID string, req CreateRequest, now time.Time) (Entry, error) {
	date, err := domain.ParseDate("date", req.Date)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Weight:    req.Weight,
		CreatedAt: now.UTC(),
	}
	if req.Steps != nil {
		e.Steps = *req.Steps
	}
	if req.Distance != nil {
		e.Distance = *req.Distance
	}
	if req.ActiveMinutes != nil {
		e.ActiveMinutes = *req.ActiveMinutes
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}
	return e, nil
}

func (r UpdateRequest) Apply(e *Entry) error {
	if r.Date != nil {
		d, err := domain.ParseDate("date", *r.Date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if r.Weight != nil {
		w := *r.Weight
		e.Weight = &w
	}
	if r.Steps != nil {
		e.Steps = *r.Steps
	}
	if r.Distance != nil {
		e.Distance = *r.Distance
	}
	if r.ActiveMinutes != nil {
		e.ActiveMinutes = *r.ActiveMinutes
	}
	if r.Notes != nil {
		e.Notes = *r.Notes
	}
	return nil
}
