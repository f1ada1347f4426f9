package main

import (
	"github.com/aevon-lab/drivelog/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return migrations.RunMigrations(db, true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Long: `Roll back the given number of applied migrations.

Examples:
  drivelog migrate down              # Roll back the latest migration
  drivelog migrate down --steps 2    # Roll back two migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return migrations.Rollback(db, steps)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")
}
