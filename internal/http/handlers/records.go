package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const storeTimeout = 3 * time.Second

// RecordService is the per-user CRUD behind workouts, nutrition, goals and progress.
type RecordService[T, C, U any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Create(ctx context.Context, userID string, req C) (T, error)
	Update(ctx context.Context, userID, id string, req U) (T, error)
	Delete(ctx context.Context, userID, id string) error
}

// RecordsHandler serves one record type; V is its wire projection.
type RecordsHandler[T, C, U, V any] struct {
	svc  RecordService[T, C, U]
	view func(T) V
	noun string // for messages, e.g. "Workout"
}

func NewWorkoutsHandler(svc RecordService[workout.Workout, workout.CreateRequest, workout.UpdateRequest]) *RecordsHandler[workout.Workout, workout.CreateRequest, workout.UpdateRequest, WorkoutView] {
	return &RecordsHandler[workout.Workout, workout.CreateRequest, workout.UpdateRequest, WorkoutView]{svc: svc, view: NewWorkoutView, noun: "Workout"}
}

func NewNutritionHandler(svc RecordService[nutrition.Entry, nutrition.CreateRequest, nutrition.UpdateRequest]) *RecordsHandler[nutrition.Entry, nutrition.CreateRequest, nutrition.UpdateRequest, NutritionView] {
	return &RecordsHandler[nutrition.Entry, nutrition.CreateRequest, nutrition.UpdateRequest, NutritionView]{svc: svc, view: NewNutritionView, noun: "Nutrition entry"}
}

func NewGoalsHandler(svc RecordService[goal.Goal, goal.CreateRequest, goal.UpdateRequest]) *RecordsHandler[goal.Goal, goal.CreateRequest, goal.UpdateRequest, GoalView] {
	return &RecordsHandler[goal.Goal, goal.CreateRequest, goal.UpdateRequest, GoalView]{svc: svc, view: NewGoalView, noun: "Goal"}
}

func NewProgressHandler(svc RecordService[progress.Entry, progress.CreateRequest, progress.UpdateRequest]) *RecordsHandler[progress.Entry, progress.CreateRequest, progress.UpdateRequest, ProgressView] {
	return &RecordsHandler[progress.Entry, progress.CreateRequest, progress.UpdateRequest, ProgressView]{svc: svc, view: NewProgressView, noun: "Progress entry"}
}

func (h *RecordsHandler[T, C, U, V]) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	items, err := h.svc.List(cctx, userID)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	respondCacheable(ctx, cachePrivate, mapViews(items, h.view))
}

func (h *RecordsHandler[T, C, U, V]) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req C
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	rec, err := h.svc.Create(cctx, userID, req)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, h.view(rec))
}

func (h *RecordsHandler[T, C, U, V]) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req U
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	rec, err := h.svc.Update(cctx, userID, ctx.Param("id"), req)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, h.view(rec))
}

func (h *RecordsHandler[T, C, U, V]) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	if err := h.svc.Delete(cctx, userID, ctx.Param("id")); err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": h.noun + " deleted successfully"})
}

// requireUser reads the identity RequireAuth stored; a route mounted without it is a wiring bug.
func requireUser(ctx *gin.Context) (string, bool) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "Authentication required")
		return "", false
	}
	return userID, true
}
