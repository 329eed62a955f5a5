package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/fittrack/internal/auth"
	"github.com/geocoder89/fittrack/internal/cache"
	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/geocoder89/fittrack/internal/repo/memory"
	"github.com/geocoder89/fittrack/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServices(t *testing.T) (*service.Services, *memory.Store, *auth.Manager) {
	t.Helper()
	return newServicesWithProm(t, nil)
}

func newServicesWithProm(t *testing.T, prom *observability.Prom) (*service.Services, *memory.Store, *auth.Manager) {
	t.Helper()

	store := memory.NewStore()
	tokens := auth.NewManager("service-test-secret", time.Hour, 24*time.Hour)

	svcs := service.New(service.Repos{
		Users:     store.Users(),
		Workouts:  store.Workouts(),
		Nutrition: store.Nutrition(),
		Goals:     store.Goals(),
		Progress:  store.Progress(),
		Foods:     store.Foods(),
	}, tokens, cache.NewMemory(time.Minute), prom, discardLogger(), clock)

	return svcs, store, tokens
}

func ptr[T any](v T) *T { return &v }

func register(t *testing.T, svcs *service.Services, email string) service.Session {
	t.Helper()

	sess, err := svcs.Auth.Register(context.Background(), user.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Name:     "Jane",
	})
	require.NoError(t, err)
	return sess
}

func kindOf(t *testing.T, err error) service.Kind {
	t.Helper()

	var se *service.Error
	require.True(t, errors.As(err, &se), "expected *service.Error, got %T: %v", err, err)
	return se.Kind
}

func TestRegisterAndLogin(t *testing.T) {
	svcs, _, tokens := newServices(t)
	ctx := context.Background()

	sess := register(t, svcs, "  Jane@Example.com ")
	assert.Equal(t, "jane@example.com", sess.User.Email)
	assert.NotEmpty(t, sess.User.PasswordHash)
	assert.NotEqual(t, "secret123", sess.User.PasswordHash)

	claims, err := tokens.VerifyAccessToken(sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID())

	_, err = tokens.VerifyRefreshToken(sess.RefreshToken)
	require.NoError(t, err)

	got, err := svcs.Auth.Login(ctx, user.LoginRequest{Email: "JANE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, got.User.ID)
}

func TestRegisterRejectsDuplicateAndShortPassword(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()

	register(t, svcs, "dup@example.com")

	_, err := svcs.Auth.Register(ctx, user.RegisterRequest{Email: "DUP@example.com", Password: "secret123", Name: "B"})
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, kindOf(t, err))

	var se *service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.CodeEmailTaken, se.Code)

	_, err = svcs.Auth.Register(ctx, user.RegisterRequest{Email: "short@example.com", Password: "12345", Name: "C"})
	require.Error(t, err)
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	_, err = svcs.Auth.Register(ctx, user.RegisterRequest{Email: "long@example.com", Password: strings.Repeat("x", 73), Name: "D"})
	require.Error(t, err)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.KindValidation, se.Kind)
	assert.Equal(t, "password", se.Field)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	register(t, svcs, "who@example.com")

	_, wrongPassword := svcs.Auth.Login(ctx, user.LoginRequest{Email: "who@example.com", Password: "nope-nope"})
	_, unknownEmail := svcs.Auth.Login(ctx, user.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	for _, err := range []error{wrongPassword, unknownEmail} {
		var se *service.Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, service.KindAuthentication, se.Kind)
		assert.Equal(t, service.CodeInvalidCredentials, se.Code)
		assert.Equal(t, "invalid email or password", se.Message)
	}
}

func TestRefresh(t *testing.T) {
	svcs, _, tokens := newServices(t)
	ctx := context.Background()
	sess := register(t, svcs, "r@example.com")

	access, err := svcs.Auth.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID())

	for _, bad := range []string{"", sess.AccessToken, "garbage"} {
		_, err := svcs.Auth.Refresh(ctx, bad)
		require.Error(t, err)
		var se *service.Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, service.KindAuthentication, se.Kind)
		assert.Equal(t, service.CodeInvalidToken, se.Code)
	}
}

func TestProfileUpdateAndDelete(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	sess := register(t, svcs, "p@example.com")
	uid := sess.User.ID

	updated, err := svcs.Users.Update(ctx, uid, user.UpdateProfileRequest{Weight: ptr(72.5)})
	require.NoError(t, err)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 72.5, *updated.Weight)
	assert.Equal(t, "Jane", updated.Name)
	assert.Equal(t, sess.User.Email, updated.Email)

	_, err = svcs.Workouts.Create(ctx, uid, workout.CreateRequest{
		ExerciseName: "Run", ExerciseType: "cardio", Duration: ptr(20), Date: "2024-06-14",
	})
	require.NoError(t, err)

	require.NoError(t, svcs.Users.Delete(ctx, uid))

	_, err = svcs.Users.Get(ctx, uid)
	assert.Equal(t, service.KindNotFound, kindOf(t, err))

	ws, err := svcs.Workouts.List(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, ws)

	assert.Equal(t, service.KindNotFound, kindOf(t, svcs.Users.Delete(ctx, uid)))

	// a still-valid access token must not recreate rows for a deleted user
	_, err = svcs.Workouts.Create(ctx, uid, workout.CreateRequest{
		ExerciseName: "Run", ExerciseType: "cardio", Duration: ptr(20), Date: "2024-06-15",
	})
	assert.Equal(t, service.KindNotFound, kindOf(t, err))
	_, err = svcs.Goals.Create(ctx, uid, goal.CreateRequest{
		Title: "Steps", TargetValue: ptr(10.0), Unit: "k", Category: "cardio", TargetDate: "2024-12-31",
	})
	assert.Equal(t, service.KindNotFound, kindOf(t, err))

	ws, err = svcs.Workouts.List(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, ws)
}

func TestWorkoutCRUDAndOwnership(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	alice := register(t, svcs, "alice@example.com").User.ID
	bob := register(t, svcs, "bob@example.com").User.ID

	w, err := svcs.Workouts.Create(ctx, alice, workout.CreateRequest{
		ExerciseName: "Bench", ExerciseType: "strength", Duration: ptr(45), Date: "2024-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, w.Sets)
	assert.Equal(t, 1, w.Reps)
	assert.Equal(t, 0, w.CaloriesBurned)
	assert.Equal(t, now, w.CreatedAt)

	_, err = svcs.Workouts.Update(ctx, bob, w.ID, workout.UpdateRequest{Sets: ptr(5)})
	assert.Equal(t, service.KindNotFound, kindOf(t, err))
	assert.Equal(t, service.KindNotFound, kindOf(t, svcs.Workouts.Delete(ctx, bob, w.ID)))

	updated, err := svcs.Workouts.Update(ctx, alice, w.ID, workout.UpdateRequest{Sets: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Sets)
	assert.Equal(t, "Bench", updated.ExerciseName)
	assert.Equal(t, w.Date, updated.Date)

	_, err = svcs.Workouts.Update(ctx, alice, w.ID, workout.UpdateRequest{Date: ptr("June 1st")})
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	require.NoError(t, svcs.Workouts.Delete(ctx, alice, w.ID))
	assert.Equal(t, service.KindNotFound, kindOf(t, svcs.Workouts.Delete(ctx, alice, w.ID)))
}

func TestCreateValidation(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	uid := register(t, svcs, "v@example.com").User.ID

	_, err := svcs.Nutrition.Create(ctx, uid, nutrition.CreateRequest{
		FoodName: "Oats", Calories: ptr(100), MealType: "brunch", Date: "2024-06-15",
	})
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	_, err = svcs.Goals.Create(ctx, uid, goal.CreateRequest{
		Title: "x", TargetValue: ptr(10.0), Unit: "km", Category: "run", TargetDate: "2024-13-01",
	})
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	_, err = svcs.Progress.Create(ctx, uid, progress.CreateRequest{})
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	var se *service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "date", se.Field)
}

func TestGoalPartialUpdate(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	uid := register(t, svcs, "g@example.com").User.ID

	g, err := svcs.Goals.Create(ctx, uid, goal.CreateRequest{
		Title: "Run far", TargetValue: ptr(10.0), Unit: "km", Category: "endurance", TargetDate: "2024-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, goal.StatusActive, g.Status)
	assert.Zero(t, g.CurrentValue)

	g, err = svcs.Goals.Update(ctx, uid, g.ID, goal.UpdateRequest{CurrentValue: ptr(5.0)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, g.CurrentValue)
	assert.Equal(t, 10.0, g.TargetValue)
	assert.Equal(t, "Run far", g.Title)

	_, err = svcs.Goals.Update(ctx, uid, g.ID, goal.UpdateRequest{Status: ptr("done")})
	assert.Equal(t, service.KindValidation, kindOf(t, err))

	list, err := svcs.Goals.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, goal.StatusActive, list[0].Status)
}

func TestDashboardStats(t *testing.T) {
	svcs, _, _ := newServices(t)
	ctx := context.Background()
	uid := register(t, svcs, "d@example.com").User.ID

	empty, err := svcs.Dashboard.Stats(ctx, uid)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalWorkouts)
	assert.NotNil(t, empty.WorkoutHistory)

	for _, date := range []string{"2024-06-15", "2024-06-08", "2024-05-01"} {
		_, err := svcs.Workouts.Create(ctx, uid, workout.CreateRequest{
			ExerciseName: "Run", ExerciseType: "cardio", Duration: ptr(30), CaloriesBurned: ptr(100), Date: date,
		})
		require.NoError(t, err)
	}
	_, err = svcs.Nutrition.Create(ctx, uid, nutrition.CreateRequest{
		FoodName: "Oats", Calories: ptr(400), MealType: "breakfast", Date: "2024-06-14",
	})
	require.NoError(t, err)
	_, err = svcs.Progress.Create(ctx, uid, progress.CreateRequest{Date: "2024-01-01", Steps: ptr(5000)})
	require.NoError(t, err)

	stats, err := svcs.Dashboard.Stats(ctx, uid)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.Equal(t, 2, stats.WeeklyWorkouts)
	assert.Equal(t, 200, stats.TotalCaloriesBurned)
	assert.Equal(t, 400, stats.TotalCaloriesConsumed)
	assert.Equal(t, 5000, stats.TotalSteps)
	assert.Len(t, stats.WorkoutHistory, 3)
}

// countingFoods counts trips to the backing store.
type countingFoods struct {
	calls int
	err   error
}

func (f *countingFoods) Search(_ context.Context, query string, limit int) ([]nutrition.Food, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []nutrition.Food{{ID: 1, Name: "Oats " + query, Calories: 389, Protein: 17, Carbs: 66, Fats: 7}}, nil
}

func TestFoodSearchReadThroughCache(t *testing.T) {
	repo := &countingFoods{}
	svc := service.NewFoodService(repo, cache.NewMemory(time.Minute), nil, discardLogger())
	ctx := context.Background()

	first, err := svc.Search(ctx, "oa", 10)
	require.NoError(t, err)
	second, err := svc.Search(ctx, "oa", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)

	_, err = svc.Search(ctx, "oa", 11)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestFoodSearchWithoutCacheAndErrors(t *testing.T) {
	repo := &countingFoods{}
	svc := service.NewFoodService(repo, nil, nil, discardLogger())

	_, err := svc.Search(context.Background(), "", 0)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	repo.err = errors.New("db down")
	_, err = svc.Search(context.Background(), "x", 5)
	assert.Equal(t, service.KindInternal, kindOf(t, err))
}

func TestAuthAndWritesAreCounted(t *testing.T) {
	prom := observability.NewProm(prometheus.NewRegistry())
	svcs, _, _ := newServicesWithProm(t, prom)
	ctx := context.Background()

	uid := register(t, svcs, "m@example.com").User.ID
	_, _ = svcs.Auth.Login(ctx, user.LoginRequest{Email: "m@example.com", Password: "wrong-one"})

	w, err := svcs.Workouts.Create(ctx, uid, workout.CreateRequest{
		ExerciseName: "Swim", ExerciseType: "cardio", Duration: ptr(25), Date: "2024-06-15",
	})
	require.NoError(t, err)
	require.NoError(t, svcs.Workouts.Delete(ctx, uid, w.ID))

	assert.Equal(t, 1.0, testutil.ToFloat64(prom.AuthEvents.WithLabelValues("register", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.AuthEvents.WithLabelValues("login", service.CodeInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.RecordWrites.WithLabelValues("workout", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.RecordWrites.WithLabelValues("workout", "delete")))
}
