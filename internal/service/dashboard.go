package service

import (
	"context"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/dashboard"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/workout"
)

type DashboardService struct {
	workouts  OwnedRepo[workout.Workout]
	nutrition OwnedRepo[nutrition.Entry]
	progress  OwnedRepo[progress.Entry]
	now       Clock
}

func NewDashboardService(
	workouts OwnedRepo[workout.Workout],
	nutritionEntries OwnedRepo[nutrition.Entry],
	progressEntries OwnedRepo[progress.Entry],
	now Clock,
) *DashboardService {
	return &DashboardService{workouts: workouts, nutrition: nutritionEntries, progress: progressEntries, now: now}
}

// Stats aggregates the user's records against today's date on the server clock.
func (s *DashboardService) Stats(ctx context.Context, userID string) (dashboard.Stats, error) {
	ws, err := s.workouts.ListByUser(ctx, userID)
	if err != nil {
		return dashboard.Stats{}, internal("load workouts", err)
	}
	ns, err := s.nutrition.ListByUser(ctx, userID)
	if err != nil {
		return dashboard.Stats{}, internal("load nutrition entries", err)
	}
	ps, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return dashboard.Stats{}, internal("load progress entries", err)
	}

	return dashboard.Compute(ws, ns, ps, calendar.FromTime(s.now())), nil
}
