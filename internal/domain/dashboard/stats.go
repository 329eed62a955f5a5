// Package dashboard aggregates a user's records into the summary shown on
// the dashboard. Compute is pure so the window arithmetic can be tested
// against a fixed "today".
package dashboard

import (
	"slices"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/workout"
)

const (
	WeekWindowDays = 7
	HistoryLimit   = 30
)

type Stats struct {
	TotalWorkouts         int
	WeeklyWorkouts        int
	TotalCaloriesBurned   int // week-scoped
	TotalCaloriesConsumed int // week-scoped
	TotalSteps            int // all time

	WorkoutHistory   []workout.Workout
	NutritionHistory []nutrition.Entry
	ProgressHistory  []progress.Entry
}

// Compute builds Stats. The week runs from today-7 through any date on or
// after it, so future-dated records are counted too.
func Compute(
	workouts []workout.Workout,
	entries []nutrition.Entry,
	progressEntries []progress.Entry,
	today calendar.Date,
) Stats {
	weekStart := today.AddDays(-WeekWindowDays)
	inWeek := func(d calendar.Date) bool { return !d.Before(weekStart) }

	s := Stats{TotalWorkouts: len(workouts)}

	for _, w := range workouts {
		if inWeek(w.Date) {
			s.WeeklyWorkouts++
			s.TotalCaloriesBurned += w.CaloriesBurned
		}
	}
	for _, e := range entries {
		if inWeek(e.Date) {
			s.TotalCaloriesConsumed += e.Calories
		}
	}
	for _, p := range progressEntries {
		s.TotalSteps += p.Steps
	}

	s.WorkoutHistory = recent(workouts, func(w workout.Workout) calendar.Date { return w.Date })
	s.NutritionHistory = recent(entries, func(e nutrition.Entry) calendar.Date { return e.Date })
	s.ProgressHistory = recent(progressEntries, func(p progress.Entry) calendar.Date { return p.Date })

	return s
}

// recent returns up to HistoryLimit items by date desc without touching in.
func recent[T any](in []T, date func(T) calendar.Date) []T {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b T) int {
		return date(b).Compare(date(a))
	})
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	if out == nil {
		out = []T{}
	}
	return out
}
