package nutrition

import (
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/google/uuid"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

type Entry struct {
	ID        string
	UserID    string
	FoodName  string
	Calories  int
	Protein   float64 // grams
	Carbs     float64
	Fats      float64
	Serving   float64 // multiplier
	Date      calendar.Date
	MealType  string
	CreatedAt time.Time
}

// Food is a reference row; macros are per 100 g.
type Food struct {
	ID       int
	Name     string
	Calories int
	Protein  float64
	Carbs    float64
	Fats     float64
}

var ErrNotFound = errors.New("nutrition entry not found")

type CreateRequest struct {
	FoodName string   `json:"foodName" binding:"required,max=100"`
	Calories *int     `json:"calories" binding:"required,min=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fats     *float64 `json:"fats" binding:"omitempty,min=0"`
	Serving  *float64 `json:"serving" binding:"omitempty,gt=0"`
	Date     string   `json:"date" binding:"required,datetime=2006-01-02"`
	MealType string   `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	FoodName *string  `json:"foodName" binding:"omitempty,min=1,max=100"`
	Calories *int     `json:"calories" binding:"omitempty,min=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fats     *float64 `json:"fats" binding:"omitempty,min=0"`
	Serving  *float64 `json:"serving" binding:"omitempty,gt=0"`
	Date     *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	MealType *string  `json:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
}

// New validates req and fills defaults: macros 0, serving 1.
func New(userID string, req CreateRequest, now time.Time) (Entry, error) {
	if err := domain.RequireText("foodName", req.FoodName); err != nil {
		return Entry{}, err
	}
	if req.Calories == nil {
		return Entry{}, domain.Required("calories")
	}
	if err := domain.RequireText("mealType", req.MealType); err != nil {
		return Entry{}, err
	}
	if err := domain.OneOf("mealType", req.MealType, MealTypes...); err != nil {
		return Entry{}, err
	}

	date, err := domain.ParseDate("date", req.Date)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		FoodName:  req.FoodName,
		Calories:  *req.Calories,
		Protein:   valueOr(req.Protein, 0),
		Carbs:     valueOr(req.Carbs, 0),
		Fats:      valueOr(req.Fats, 0),
		Serving:   valueOr(req.Serving, 1),
		Date:      date,
		MealType:  req.MealType,
		CreatedAt: now.UTC(),
	}, nil
}

func (r UpdateRequest) Apply(e *Entry) error {
	if err := domain.RequireTextIfSet("foodName", r.FoodName); err != nil {
		return err
	}
	if r.MealType != nil {
		if err := domain.OneOf("mealType", *r.MealType, MealTypes...); err != nil {
			return err
		}
	}
	if r.Date != nil {
		d, err := domain.ParseDate("date", *r.Date)
		if err != nil {
			return err
		}
		e.Date = d
	}

	if r.MealType != nil {
		e.MealType = *r.MealType
	}
	if r.FoodName != nil {
		e.FoodName = *r.FoodName
	}
	if r.Calories != nil {
		e.Calories = *r.Calories
	}
	if r.Protein != nil {
		e.Protein = *r.Protein
	}
	if r.Carbs != nil {
		e.Carbs = *r.Carbs
	}
	if r.Fats != nil {
		e.Fats = *r.Fats
	}
	if r.Serving != nil {
		e.Serving = *r.Serving
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
