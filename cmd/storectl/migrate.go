package main

import (
	"fmt"

	"storefront/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSQL(cmd, func(db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return errors.WithStack(err)
			}

			changed, err := migrations.Up(sqlDB)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")

				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")

			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSQL(cmd, func(db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return errors.WithStack(err)
			}

			if err := migrations.Down(sqlDB, rollbackSteps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", rollbackSteps)

			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSQL(cmd, func(db *gorm.DB) error {
			sqlDB, err := db.DB()
			if err != nil {
				return errors.WithStack(err)
			}

			version, dirty, err := migrations.Version(sqlDB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)

			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "Number of migrations to roll back")
}

func withSQL(cmd *cobra.Command, run func(db *gorm.DB) error) error {
	var db *gorm.DB
	stop, err := withApp(cmd.Context(), &db)
	if err != nil {
		return err
	}
	defer stop()

	return run(db)
}
