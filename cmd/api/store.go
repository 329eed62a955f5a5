package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geocoder89/fittrack/internal/cache"
	"github.com/geocoder89/fittrack/internal/config"
	"github.com/geocoder89/fittrack/internal/db"
	"github.com/geocoder89/fittrack/internal/http/handlers"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/geocoder89/fittrack/internal/repo/memory"
	"github.com/geocoder89/fittrack/internal/repo/postgres"
	"github.com/geocoder89/fittrack/internal/service"
)

// store bundles the repositories for one STORE_DRIVER plus what seeding
// and readiness need from it.
type store struct {
	repos service.Repos
	foods db.FoodSeeder
	users db.UserSeeder
	ready map[string]handlers.Pinger
	close func()
}

func openStore(ctx context.Context, cfg config.Config, prom *observability.Prom, log *slog.Logger) (*store, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using the in-memory store; data is lost on restart")

		m := memory.NewStore()
		return &store{
			repos: service.Repos{
				Users:     m.Users(),
				Workouts:  m.Workouts(),
				Nutrition: m.Nutrition(),
				Goals:     m.Goals(),
				Progress:  m.Progress(),
				Foods:     m.Foods(),
			},
			foods: m.Foods(),
			users: m.Users(),
			ready: map[string]handlers.Pinger{},
			close: func() {},
		}, nil
	}

	if cfg.AutoMigrate {
		if err := db.MigrateUp(cfg.DBURL); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied")
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:         cfg.DBURL,
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxIdleTime: cfg.DBMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	users := postgres.NewUsersRepo(pool, prom)
	foods := postgres.NewFoodsRepo(pool, prom)

	return &store{
		repos: service.Repos{
			Users:     users,
			Workouts:  postgres.NewWorkoutsRepo(pool, prom),
			Nutrition: postgres.NewNutritionRepo(pool, prom),
			Goals:     postgres.NewGoalsRepo(pool, prom),
			Progress:  postgres.NewProgressRepo(pool, prom),
			Foods:     foods,
		},
		foods: foods,
		users: users,
		ready: map[string]handlers.Pinger{"postgres": pool},
		close: pool.Close,
	}, nil
}

// openFoodCache picks redis when REDIS_ADDR is set and a process-local
// cache otherwise. A redis cache also becomes a readiness check.
func openFoodCache(cfg config.Config, ready map[string]handlers.Pinger) (cache.Store, map[string]handlers.Pinger) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.FoodCacheTTL), ready
	}

	rdb := cache.NewRedisClient(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	c := cache.NewRedis(rdb, "fittrack:", cfg.FoodCacheTTL)
	ready["redis"] = c

	return c, ready
}
