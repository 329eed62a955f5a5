package memory

import (
	"context"
	"slices"

	"github.com/geocoder89/fittrack/internal/domain/user"
)

type UsersRepo struct {
	s *Store
}

func (r *UsersRepo) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return clone(u), nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Update(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.s.users, id)
	r.s.deleteOwnedBy(id)
	return nil
}

// clone detaches the goals slice so callers cannot mutate stored state.
func clone(u user.User) user.User {
	u.FitnessGoals = slices.Clone(u.FitnessGoals)
	if u.FitnessGoals == nil {
		u.FitnessGoals = []string{}
	}
	return u
}
