package dashboard

import (
	"testing"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = calendar.New(2024, 6, 15)

func TestComputeWeekWindowIsInclusive(t *testing.T) {
	workouts := []workout.Workout{
		{ID: "in-today", Date: today, CaloriesBurned: 200},
		{ID: "in-edge", Date: today.AddDays(-7), CaloriesBurned: 100},
		{ID: "out", Date: today.AddDays(-8), CaloriesBurned: 999},
		{ID: "future", Date: today.AddDays(3), CaloriesBurned: 50},
	}
	entries := []nutrition.Entry{
		{ID: "n1", Date: today, Calories: 500},
		{ID: "n2", Date: today.AddDays(-8), Calories: 700},
	}

	s := Compute(workouts, entries, nil, today)

	assert.Equal(t, 4, s.TotalWorkouts)
	assert.Equal(t, 3, s.WeeklyWorkouts)
	assert.Equal(t, 350, s.TotalCaloriesBurned)
	assert.Equal(t, 500, s.TotalCaloriesConsumed)
}

func TestComputeStepsAreNotWeekScoped(t *testing.T) {
	entries := []progress.Entry{
		{ID: "old", Date: today.AddDays(-100), Steps: 4000},
		{ID: "new", Date: today, Steps: 6000},
	}

	s := Compute(nil, nil, entries, today)

	assert.Equal(t, 10000, s.TotalSteps)
}

func TestComputeHistoryNewestFirstAndCapped(t *testing.T) {
	var workouts []workout.Workout
	for i := 0; i < 40; i++ {
		workouts = append(workouts, workout.Workout{ID: string(rune('A' + i)), Date: today.AddDays(-i)})
	}
	// oldest first in the input
	for i, j := 0, len(workouts)-1; i < j; i, j = i+1, j-1 {
		workouts[i], workouts[j] = workouts[j], workouts[i]
	}

	s := Compute(workouts, nil, nil, today)

	require.Len(t, s.WorkoutHistory, HistoryLimit)
	assert.Equal(t, today, s.WorkoutHistory[0].Date)
	assert.Equal(t, today.AddDays(-29), s.WorkoutHistory[HistoryLimit-1].Date)
	// input untouched
	assert.Equal(t, today.AddDays(-39), workouts[0].Date)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, nil, nil, today)

	assert.Zero(t, s.TotalWorkouts)
	assert.Zero(t, s.TotalSteps)
	assert.NotNil(t, s.WorkoutHistory)
	assert.Empty(t, s.NutritionHistory)
	assert.Empty(t, s.ProgressHistory)
}
