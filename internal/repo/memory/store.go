// Package memory is an in-process store for tests and STORE_DRIVER=memory.
// All tables share one lock so deleting a user can cascade atomically.
package memory

import (
	"sync"

	"github.com/geocoder89/fittrack/internal/domain/goal"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/domain/progress"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/domain/workout"
)

type Store struct {
	mu sync.RWMutex

	users     map[string]user.User
	workouts  map[string]workout.Workout
	nutrition map[string]nutrition.Entry
	goals     map[string]goal.Goal
	progress  map[string]progress.Entry
	foods     []nutrition.Food
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]user.User),
		workouts:  make(map[string]workout.Workout),
		nutrition: make(map[string]nutrition.Entry),
		goals:     make(map[string]goal.Goal),
		progress:  make(map[string]progress.Entry),
	}
}

func (s *Store) Users() *UsersRepo { return &UsersRepo{s: s} }

func (s *Store) Foods() *FoodsRepo { return &FoodsRepo{s: s} }

func (s *Store) Workouts() *OwnedRepo[workout.Workout] {
	return &OwnedRepo[workout.Workout]{
		s:        s,
		table:    func(s *Store) map[string]workout.Workout { return s.workouts },
		key:      func(w workout.Workout) rowKey { return rowKey{w.ID, w.UserID, w.Date, w.CreatedAt} },
		notFound: workout.ErrNotFound,
	}
}

func (s *Store) Nutrition() *OwnedRepo[nutrition.Entry] {
	return &OwnedRepo[nutrition.Entry]{
		s:        s,
		table:    func(s *Store) map[string]nutrition.Entry { return s.nutrition },
		key:      func(e nutrition.Entry) rowKey { return rowKey{e.ID, e.UserID, e.Date, e.CreatedAt} },
		notFound: nutrition.ErrNotFound,
	}
}

// Goals are ordered by creation only; the zero date keeps them tied on date.
func (s *Store) Goals() *OwnedRepo[goal.Goal] {
	return &OwnedRepo[goal.Goal]{
		s:        s,
		table:    func(s *Store) map[string]goal.Goal { return s.goals },
		key:      func(g goal.Goal) rowKey { return rowKey{id: g.ID, userID: g.UserID, createdAt: g.CreatedAt} },
		notFound: goal.ErrNotFound,
	}
}

func (s *Store) Progress() *OwnedRepo[progress.Entry] {
	return &OwnedRepo[progress.Entry]{
		s:        s,
		table:    func(s *Store) map[string]progress.Entry { return s.progress },
		key:      func(e progress.Entry) rowKey { return rowKey{e.ID, e.UserID, e.Date, e.CreatedAt} },
		notFound: progress.ErrNotFound,
	}
}

// deleteOwnedBy must be called with s.mu held for writing.
func (s *Store) deleteOwnedBy(userID string) {
	for id, w := range s.workouts {
		if w.UserID == userID {
			delete(s.workouts, id)
		}
	}
	for id, e := range s.nutrition {
		if e.UserID == userID {
			delete(s.nutrition, id)
		}
	}
	for id, g := range s.goals {
		if g.UserID == userID {
			delete(s.goals, id)
		}
	}
	for id, e := range s.progress {
		if e.UserID == userID {
			delete(s.progress, id)
		}
	}
}
