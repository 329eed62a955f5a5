package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/geocoder89/fittrack/internal/repo/memory"
	"github.com/geocoder89/fittrack/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := Seed(ctx, store.Foods(), store.Users(), logger)
	require.NoError(t, err)
	assert.Equal(t, 15, first.FoodsInserted)
	assert.True(t, first.DemoUserAdded)

	second, err := Seed(ctx, store.Foods(), store.Users(), logger)
	require.NoError(t, err)
	assert.Zero(t, second.FoodsInserted)
	assert.False(t, second.DemoUserAdded)

	n, err := store.Foods().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	demo, err := store.Users().GetByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", demo.Name)
	assert.Equal(t, []string{"General Fitness", "Weight Loss"}, demo.FitnessGoals)
	assert.NoError(t, security.CheckPassword(demo.PasswordHash, DemoPassword))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/d?sslmode=disable", MigrateURL("postgres://u:p@h:5432/d?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/d", MigrateURL("postgresql://u@h/d"))
	assert.Equal(t, "pgx5://already", MigrateURL("pgx5://already"))
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}
