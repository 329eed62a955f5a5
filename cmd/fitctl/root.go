package main

import (
	"github.com/geocoder89/fittrack/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var dbURL string

	root := &cobra.Command{
		Use:          "fitctl",
		Short:        "Operational commands for the FitTrack API",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&dbURL, "database-url", "", "postgres DSN (defaults to DATABASE_URL)")

	resolveDB := func() (string, error) {
		if dbURL != "" {
			return dbURL, nil
		}
		cfg, err := config.Load()
		if err != nil {
			return "", err
		}
		return cfg.DBURL, nil
	}

	root.AddCommand(newMigrateCmd(resolveDB))
	root.AddCommand(newSeedCmd(resolveDB))

	return root
}
