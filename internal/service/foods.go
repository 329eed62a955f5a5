package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/geocoder89/fittrack/internal/cache"
	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/geocoder89/fittrack/internal/observability"
)

const (
	DefaultFoodSearchLimit = 20
	MaxFoodSearchLimit     = 100

	foodCacheName = "food_search"
)

// FoodService searches the static food reference table through a read-through cache.
type FoodService struct {
	foods FoodRepo
	cache cache.Store
	prom  *observability.Prom
	log   *slog.Logger
}

func NewFoodService(foods FoodRepo, c cache.Store, prom *observability.Prom, log *slog.Logger) *FoodService {
	return &FoodService{foods: foods, cache: c, prom: prom, log: log}
}

// cachedFood is the cache encoding of nutrition.Food.
type cachedFood struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]nutrition.Food, error) {
	limit = clampLimit(limit)
	key := cache.FoodSearchKey(query, limit)

	if foods, ok := s.fromCache(ctx, key); ok {
		return foods, nil
	}

	foods, err := s.foods.Search(ctx, query, limit)
	if err != nil {
		return nil, internal("search foods", err)
	}
	if foods == nil {
		foods = []nutrition.Food{}
	}

	s.toCache(ctx, key, foods)
	return foods, nil
}

func (s *FoodService) fromCache(ctx context.Context, key string) ([]nutrition.Food, bool) {
	if s.cache == nil {
		return nil, false
	}

	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			s.prom.ObserveCache(foodCacheName, "miss")
		} else {
			s.prom.ObserveCache(foodCacheName, "error")
			s.log.WarnContext(ctx, "food cache read failed", "key", key, "err", err)
		}
		return nil, false
	}

	var rows []cachedFood
	if err := json.Unmarshal(b, &rows); err != nil {
		s.prom.ObserveCache(foodCacheName, "error")
		s.log.WarnContext(ctx, "food cache entry corrupt", "key", key, "err", err)
		return nil, false
	}

	s.prom.ObserveCache(foodCacheName, "hit")

	foods := make([]nutrition.Food, 0, len(rows))
	for _, r := range rows {
		foods = append(foods, nutrition.Food(r))
	}
	return foods, true
}

func (s *FoodService) toCache(ctx context.Context, key string, foods []nutrition.Food) {
	if s.cache == nil {
		return
	}

	rows := make([]cachedFood, 0, len(foods))
	for _, f := range foods {
		rows = append(rows, cachedFood(f))
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b); err != nil {
		s.prom.ObserveCache(foodCacheName, "error")
		s.log.WarnContext(ctx, "food cache write failed", "key", key, "err", err)
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultFoodSearchLimit
	case limit > MaxFoodSearchLimit:
		return MaxFoodSearchLimit
	}
	return limit
}
