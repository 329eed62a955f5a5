package service

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/observability"
)

// Clock returns the current instant. Tests pin it.
type Clock func() time.Time

type patch[T any] interface {
	Apply(*T) error
}

// RecordService is the ownership-scoped CRUD shared by workouts, nutrition
// entries, goals and progress entries. C is the create request, U the patch.
type RecordService[T any, C any, U patch[T]] struct {
	repo     OwnedRepo[T]
	what     string
	kind     string // metrics label
	notFound error
	build    func(userID string, req C, now time.Time) (T, error)
	prom     *observability.Prom
	now      Clock
}

type (
	WorkoutService   = RecordService[workout.Workout, workout.CreateRequest, workout.UpdateRequest]
	NutritionService = RecordService[nutrition.Entry, nutrition.CreateRequest, nutrition.UpdateRequest]
	GoalService      = RecordService[goal.Goal, goal.CreateRequest, goal.UpdateRequest]
	ProgressService  = RecordService[progress.Entry, progress.CreateRequest, progress.UpdateRequest]
)

func NewWorkoutService(repo OwnedRepo[workout.Workout], prom *observability.Prom, now Clock) *WorkoutService {
	return &WorkoutService{repo: repo, what: "workout", kind: "workout", notFound: workout.ErrNotFound, build: workout.New, prom: prom, now: now}
}

func NewNutritionService(repo OwnedRepo[nutrition.Entry], prom *observability.Prom, now Clock) *NutritionService {
	return &NutritionService{repo: repo, what: "nutrition entry", kind: "nutrition", notFound: nutrition.ErrNotFound, build: nutrition.New, prom: prom, now: now}
}

func NewGoalService(repo OwnedRepo[goal.Goal], prom *observability.Prom, now Clock) *GoalService {
	return &GoalService{repo: repo, what: "goal", kind: "goal", notFound: goal.ErrNotFound, build: goal.New, prom: prom, now: now}
}

func NewProgressService(repo OwnedRepo[progress.Entry], prom *observability.Prom, now Clock) *ProgressService {
	return &ProgressService{repo: repo, what: "progress entry", kind: "progress", notFound: progress.ErrNotFound, build: progress.New, prom: prom, now: now}
}

func (s *RecordService[T, C, U]) List(ctx context.Context, userID string) ([]T, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal("list "+s.what+"s", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *RecordService[T, C, U]) Create(ctx context.Context, userID string, req C) (T, error) {
	var zero T

	rec, err := s.build(userID, req, s.now())
	if err != nil {
		return zero, fromDomain("create "+s.what, err)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		// the owner was deleted while still holding a valid access token
		if errors.Is(err, user.ErrNotFound) {
			return zero, notFound("user", err)
		}
		return zero, internal("create "+s.what, err)
	}
	s.prom.ObserveRecordWrite(s.kind, "create")
	return rec, nil
}

func (s *RecordService[T, C, U]) Update(ctx context.Context, userID, id string, req U) (T, error) {
	var zero T

	rec, err := loadOwned(ctx, s.repo, s.notFound, s.what, userID, id)
	if err != nil {
		return zero, err
	}

	if err := req.Apply(&rec); err != nil {
		return zero, fromDomain("update "+s.what, err)
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		// deleted between load and write
		if errors.Is(err, s.notFound) {
			return zero, notFound(s.what, err)
		}
		return zero, internal("update "+s.what, err)
	}
	s.prom.ObserveRecordWrite(s.kind, "update")
	return rec, nil
}

func (s *RecordService[T, C, U]) Delete(ctx context.Context, userID, id string) error {
	if _, err := loadOwned(ctx, s.repo, s.notFound, s.what, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, s.notFound) {
			return notFound(s.what, err)
		}
		return internal("delete "+s.what, err)
	}
	s.prom.ObserveRecordWrite(s.kind, "delete")
	return nil
}

// loadOwned fetches the record with id that belongs to userID. Another user's
// record is indistinguishable from a missing one.
func loadOwned[T any](ctx context.Context, repo OwnedRepo[T], missing error, what, userID, id string) (T, error) {
	rec, err := repo.GetOwned(ctx, userID, id)
	if err != nil {
		var zero T
		if errors.Is(err, missing) {
			return zero, notFound(what, err)
		}
		return zero, internal("load "+what, err)
	}
	return rec, nil
}
