package memory

import (
	"context"
	"strings"

	"github.com/geocoder89/fittrack/internal/domain/nutrition"
)

type FoodsRepo struct {
	s *Store
}

// Search matches name case-insensitively; the query is a plain substring.
func (r *FoodsRepo) Search(_ context.Context, query string, limit int) ([]nutrition.Food, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]nutrition.Food, 0, min(limit, len(r.s.foods)))
	for _, f := range r.s.foods {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FoodsRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.foods), nil
}

// InsertMany assigns sequential ids, like a serial column.
func (r *FoodsRepo) InsertMany(_ context.Context, foods []nutrition.Food) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	next := len(r.s.foods) + 1
	for _, f := range foods {
		f.ID = next
		next++
		r.s.foods = append(r.s.foods, f)
	}
	return nil
}
