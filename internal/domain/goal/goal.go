package goal

import (
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

var Statuses = []string{StatusActive, StatusCompleted, StatusPaused}

type Goal struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Category     string
	TargetDate   calendar.Date
	Status       string
	CreatedAt    time.Time
}

var ErrNotFound = errors.New("goal not found")

type CreateRequest struct {
	Title        string   `json:"title" binding:"required,max=100"`
	Description  *string  `json:"description"`
	TargetValue  *float64 `json:"targetValue" binding:"required"`
	CurrentValue *float64 `json:"currentValue"`
	Unit         string   `json:"unit" binding:"required,max=20"`
	Category     string   `json:"category" binding:"required,max=50"`
	TargetDate   string   `json:"targetDate" binding:"required,datetime=2006-01-02"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active completed paused"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=100"`
	Description  *string  `json:"description"`
	TargetValue  *float64 `json:"targetValue"`
	CurrentValue *float64 `json:"currentValue"`
	Unit         *string  `json:"unit" binding:"omitempty,min=1,max=20"`
	Category     *string  `json:"category" binding:"omitempty,min=1,max=50"`
	TargetDate   *string  `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active completed paused"`
}

// New validates req and fills defaults: empty description, current value 0, status active.
func New(userID string, req CreateRequest, now time.Time) (Goal, error) {
	if err := domain.RequireText("title", req.Title); err != nil {
		return Goal{}, err
	}
	if req.TargetValue == nil {
		return Goal{}, domain.Required("targetValue")
	}
	if err := domain.RequireText("unit", req.Unit); err != nil {
		return Goal{}, err
	}
	if err := domain.RequireText("category", req.Category); err != nil {
		return Goal{}, err
	}

	targetDate, err := domain.ParseDate("targetDate", req.TargetDate)
	if err != nil {
		return Goal{}, err
	}

	status := StatusActive
	if req.Status != nil {
		if err := domain.OneOf("status", *req.Status, Statuses...); err != nil {
			return Goal{}, err
		}
		status = *req.Status
	}

	g := Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		TargetValue: *req.TargetValue,
		Unit:        req.Unit,
		Category:    req.Category,
		TargetDate:  targetDate,
		Status:      status,
		CreatedAt:   now.UTC(),
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.CurrentValue != nil {
		g.CurrentValue = *req.CurrentValue
	}

	return g, nil
}

func (r UpdateRequest) Apply(g *Goal) error {
	if err := domain.RequireTextIfSet("title", r.Title); err != nil {
		return err
	}
	if err := domain.RequireTextIfSet("unit", r.Unit); err != nil {
		return err
	}
	if err := domain.RequireTextIfSet("category", r.Category); err != nil {
		return err
	}
	if r.Status != nil {
		if err := domain.OneOf("status", *r.Status, Statuses...); err != nil {
			return err
		}
	}
	if r.TargetDate != nil {
		d, err := domain.ParseDate("targetDate", *r.TargetDate)
		if err != nil {
			return err
		}
		g.TargetDate = d
	}

	if r.Status != nil {
		g.Status = *r.Status
	}
	if r.Title != nil {
		g.Title = *r.Title
	}
	if r.Description != nil {
		g.Description = *r.Description
	}
	if r.TargetValue != nil {
		g.TargetValue = *r.TargetValue
	}
	if r.CurrentValue != nil {
		g.CurrentValue = *r.CurrentValue
	}
	if r.Unit != nil {
		g.Unit = *r.Unit
	}
	if r.Category != nil {
		g.Category = *r.Category
	}
	return nil
}

// Progress is current/target as a fraction in [0, 1]; a non-positive target reports 0.
func (g Goal) Progress() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	p := g.CurrentValue / g.TargetValue
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
