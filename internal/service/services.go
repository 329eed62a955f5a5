package service

import (
	"log/slog"

	"github.com/geocoder89/fittrack/internal/cache"
	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/observability"
)

// Repos is the storage a Services set runs on, postgres or memory.
type Repos struct {
	Users     UserRepo
	Workouts  OwnedRepo[workout.Workout]
	Nutrition OwnedRepo[nutrition.Entry]
	Goals     OwnedRepo[goal.Goal]
	Progress  OwnedRepo[progress.Entry]
	Foods     FoodRepo
}

type Services struct {
	Auth      *AuthService
	Users     *UserService
	Workouts  *WorkoutService
	Nutrition *NutritionService
	Goals     *GoalService
	Progress  *ProgressService
	Foods     *FoodService
	Dashboard *DashboardService
}

func New(r Repos, tokens TokenIssuer, foodCache cache.Store, prom *observability.Prom, log *slog.Logger, now Clock) *Services {
	return &Services{
		Auth:      NewAuthService(r.Users, tokens, prom, now, log),
		Users:     NewUserService(r.Users),
		Workouts:  NewWorkoutService(r.Workouts, prom, now),
		Nutrition: NewNutritionService(r.Nutrition, prom, now),
		Goals:     NewGoalService(r.Goals, prom, now),
		Progress:  NewProgressService(r.Progress, prom, now),
		Foods:     NewFoodService(r.Foods, foodCache, prom, log),
		Dashboard: NewDashboardService(r.Workouts, r.Nutrition, r.Progress, now),
	}
}
