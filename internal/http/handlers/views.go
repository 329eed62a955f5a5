package handlers

import (
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/dashboard"
	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/domain/workout"
)

// Wire projections. Domain types never reach the encoder directly, so the
// password hash cannot leak and field names are pinned here.

type UserView struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Age          *int     `json:"age"`
	Gender       *string  `json:"gender"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	FitnessGoals []string `json:"fitnessGoals"`
	CreatedAt    string   `json:"createdAt"`
}

func NewUserView(u user.User) UserView {
	goals := u.FitnessGoals
	if goals == nil {
		goals = []string{}
	}
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Age:          u.Age,
		Gender:       u.Gender,
		Height:       u.Height,
		Weight:       u.Weight,
		FitnessGoals: goals,
		CreatedAt:    timestamp(u.CreatedAt),
	}
}

type WorkoutView struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	ExerciseName   string        `json:"exerciseName"`
	ExerciseType   string        `json:"exerciseType"`
	Sets           int           `json:"sets"`
	Reps           int           `json:"reps"`
	Duration       int           `json:"duration"`
	CaloriesBurned int           `json:"caloriesBurned"`
	Date           calendar.Date `json:"date"`
	Notes          string        `json:"notes"`
	CreatedAt      string        `json:"createdAt"`
}

func NewWorkoutView(w workout.Workout) WorkoutView {
	return WorkoutView{
		ID:             w.ID,
		UserID:         w.UserID,
		ExerciseName:   w.ExerciseName,
		ExerciseType:   w.ExerciseType,
		Sets:           w.Sets,
		Reps:           w.Reps,
		Duration:       w.Duration,
		CaloriesBurned: w.CaloriesBurned,
		Date:           w.Date,
		Notes:          w.Notes,
		CreatedAt:      timestamp(w.CreatedAt),
	}
}

type NutritionView struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	FoodName  string        `json:"foodName"`
	Calories  int           `json:"calories"`
	Protein   float64       `json:"protein"`
	Carbs     float64       `json:"carbs"`
	Fats      float64       `json:"fats"`
	Serving   float64       `json:"serving"`
	Date      calendar.Date `json:"date"`
	MealType  string        `json:"mealType"`
	CreatedAt string        `json:"createdAt"`
}

func NewNutritionView(e nutrition.Entry) NutritionView {
	return NutritionView{
		ID:        e.ID,
		UserID:    e.UserID,
		FoodName:  e.FoodName,
		Calories:  e.Calories,
		Protein:   e.Protein,
		Carbs:     e.Carbs,
		Fats:      e.Fats,
		Serving:   e.Serving,
		Date:      e.Date,
		MealType:  e.MealType,
		CreatedAt: timestamp(e.CreatedAt),
	}
}

type FoodView struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func NewFoodView(f nutrition.Food) FoodView {
	return FoodView(f)
}

type GoalView struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	TargetValue  float64       `json:"targetValue"`
	CurrentValue float64       `json:"currentValue"`
	Progress     float64       `json:"progress"` // current/target, 0..1
	Unit         string        `json:"unit"`
	Category     string        `json:"category"`
	TargetDate   calendar.Date `json:"targetDate"`
	Status       string        `json:"status"`
	CreatedAt    string        `json:"createdAt"`
}

func NewGoalView(g goal.Goal) GoalView {
	return GoalView{
		ID:           g.ID,
		UserID:       g.UserID,
		Title:        g.Title,
		Description:  g.Description,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Progress:     g.Progress(),
		Unit:         g.Unit,
		Category:     g.Category,
		TargetDate:   g.TargetDate,
		Status:       g.Status,
		CreatedAt:    timestamp(g.CreatedAt),
	}
}

type ProgressView struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Date          calendar.Date `json:"date"`
	Weight        *float64      `json:"weight"`
	Steps         int           `json:"steps"`
	Distance      float64       `json:"distance"`
	ActiveMinutes int           `json:"activeMinutes"`
	Notes         string        `json:"notes"`
	CreatedAt     string        `json:"createdAt"`
}

func NewProgressView(e progress.Entry) ProgressView {
	return ProgressView{
		ID:            e.ID,
		UserID:        e.UserID,
		Date:          e.Date,
		Weight:        e.Weight,
		Steps:         e.Steps,
		Distance:      e.Distance,
		ActiveMinutes: e.ActiveMinutes,
		Notes:         e.Notes,
		CreatedAt:     timestamp(e.CreatedAt),
	}
}

type StatsView struct {
	TotalWorkouts         int             `json:"totalWorkouts"`
	WeeklyWorkouts        int             `json:"weeklyWorkouts"`
	TotalCaloriesBurned   int             `json:"totalCaloriesBurned"`
	TotalCaloriesConsumed int             `json:"totalCaloriesConsumed"`
	TotalSteps            int             `json:"totalSteps"`
	WorkoutHistory        []WorkoutView   `json:"workoutHistory"`
	NutritionHistory      []NutritionView `json:"nutritionHistory"`
	ProgressHistory       []ProgressView  `json:"progressHistory"`
}

func NewStatsView(s dashboard.Stats) StatsView {
	return StatsView{
		TotalWorkouts:         s.TotalWorkouts,
		WeeklyWorkouts:        s.WeeklyWorkouts,
		TotalCaloriesBurned:   s.TotalCaloriesBurned,
		TotalCaloriesConsumed: s.TotalCaloriesConsumed,
		TotalSteps:            s.TotalSteps,
		WorkoutHistory:        mapViews(s.WorkoutHistory, NewWorkoutView),
		NutritionHistory:      mapViews(s.NutritionHistory, NewNutritionView),
		ProgressHistory:       mapViews(s.ProgressHistory, NewProgressView),
	}
}

func mapViews[T, V any](in []T, view func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, view(v))
	}
	return out
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
