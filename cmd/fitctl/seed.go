package main

import (
	"context"
	"time"

	"github.com/geocoder89/fittrack/internal/db"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/geocoder89/fittrack/internal/repo/postgres"
	"github.com/spf13/cobra"
)

func newSeedCmd(resolveDB func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the reference foods and the demo account",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := resolveDB()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := db.NewPool(ctx, db.PoolConfig{URL: dsn, MaxConns: 2})
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := db.Seed(ctx, postgres.NewFoodsRepo(pool, nil), postgres.NewUsersRepo(pool, nil), observability.NewLogger("prod", ""))
			if err != nil {
				return err
			}

			cmd.Printf("foods inserted: %d, demo user added: %t\n", res.FoodsInserted, res.DemoUserAdded)
			return nil
		},
	}
}
