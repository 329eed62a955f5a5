package memory

import (
	"context"
	"slices"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
	"github.com/geocoder89/fittrack/internal/domain/user"
)

type rowKey struct {
	id        string
	userID    string
	date      calendar.Date
	createdAt time.Time
}

// OwnedRepo is one user-owned table inside a Store.
type OwnedRepo[T any] struct {
	s        *Store
	table    func(*Store) map[string]T
	key      func(T) rowKey
	notFound error
}

// ListByUser orders by date desc, then created_at desc.
func (r *OwnedRepo[T]) ListByUser(_ context.Context, userID string) ([]T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]T, 0)
	for _, rec := range r.table(r.s) {
		if r.key(rec).userID == userID {
			out = append(out, rec)
		}
	}

	slices.SortFunc(out, func(a, b T) int {
		ka, kb := r.key(a), r.key(b)
		if c := kb.date.Compare(ka.date); c != 0 {
			return c
		}
		if c := kb.createdAt.Compare(ka.createdAt); c != 0 {
			return c
		}
		return compareStrings(ka.id, kb.id)
	})
	return out, nil
}

func (r *OwnedRepo[T]) GetOwned(_ context.Context, userID, id string) (T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.table(r.s)[id]
	if !ok || r.key(rec).userID != userID {
		var zero T
		return zero, r.notFound
	}
	return rec, nil
}

// Create refuses rows whose owner is gone, mirroring the user_id foreign key.
func (r *OwnedRepo[T]) Create(_ context.Context, rec T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := r.key(rec)
	if _, ok := r.s.users[k.userID]; !ok {
		return user.ErrNotFound
	}
	r.table(r.s)[k.id] = rec
	return nil
}

func (r *OwnedRepo[T]) Update(_ context.Context, rec T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := r.key(rec)
	cur, ok := r.table(r.s)[k.id]
	if !ok || r.key(cur).userID != k.userID {
		return r.notFound
	}
	r.table(r.s)[k.id] = rec
	return nil
}

func (r *OwnedRepo[T]) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.table(r.s)[id]
	if !ok || r.key(cur).userID != userID {
		return r.notFound
	}
	delete(r.table(r.s), id)
	return nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
