package main

import (
	"fmt"

	"github.com/geocoder89/fittrack/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(resolveDB func() (string, error)) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	withMigrator := func(fn func(*db.Migrator) error) error {
		dsn, err := resolveDB()
		if err != nil {
			return err
		}
		mg, err := db.NewMigrator(dsn)
		if err != nil {
			return err
		}
		defer mg.Close()

		return fn(mg)
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *db.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				cmd.Println("migrations applied")
				return nil
			})
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *db.Migrator) error {
				if err := mg.Down(steps); err != nil {
					return err
				}
				cmd.Println("migrations rolled back")
				return nil
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back; 0 rolls back all")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *db.Migrator) error {
				v, dirty, err := mg.Version()
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				cmd.Printf("version=%d dirty=%t\n", v, dirty)
				return nil
			})
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}
