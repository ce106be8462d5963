// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizForge Contributors

package main

import (
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/store"
)

// NewMigrateCmd creates the migrate subcommand with its actions.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().String("database_url", "", "PostgreSQL connection URL")

	cmd.AddCommand(
		newMigrateUpCmd(),
		newMigrateDownCmd(),
		newMigrateStepsCmd(),
		newMigrateVersionCmd(),
		newMigrateForceCmd(),
	)
	return cmd
}

// openMigrator resolves the database URL from config and flags and
// creates a Migrator. The caller must Close it.
func openMigrator(cmd *cobra.Command) (*store.Migrator, error) {
	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("database_url is required")
	}
	return store.NewMigrator(cfg.DatabaseURL)
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, migrator)

			pending, err := migrator.PendingMigrations()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				cmd.Println("No pending migrations")
				return nil
			}

			if err := migrator.Up(); err != nil {
				return err
			}
			cmd.Printf("Applied %d migration(s)\n", len(pending))
			return nil
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (destructive)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return oops.Code("CONFIRM_REQUIRED").
					Errorf("migrate down drops all tables; re-run with --yes to confirm")
			}

			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, migrator)

			if err := migrator.Down(); err != nil {
				return err
			}
			cmd.Println("Rolled back all migrations")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destructive rollback")
	return cmd
}

func newMigrateStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations (negative n rolls back)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.Code("INVALID_STEPS").With("value", args[0]).Wrap(err)
			}

			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, migrator)

			if err := migrator.Steps(n); err != nil {
				return err
			}
			cmd.Printf("Applied %d step(s)\n", n)
			return nil
		},
	}
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, migrator)

			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				cmd.Println("No migrations applied")
				return nil
			}
			if dirty {
				cmd.Printf("Version %d (dirty: manual intervention required)\n", version)
				return nil
			}
			cmd.Printf("Version %d\n", version)
			return nil
		},
	}
}

func newMigrateForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the migration version without running migrations",
		Long: `Set the migration version without running migrations. Use only to
recover from a dirty state after fixing the database by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil || version < 0 {
				return oops.Code("INVALID_VERSION").
					Errorf("version must be a non-negative integer, got %q", args[0])
			}

			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, migrator)

			if err := migrator.Force(version); err != nil {
				return err
			}
			cmd.Printf("Forced version to %d\n", version)
			return nil
		},
	}
}

func closeMigrator(cmd *cobra.Command, migrator *store.Migrator) {
	if err := migrator.Close(); err != nil {
		cmd.PrintErrf("warning: failed to close migrator: %v\n", err)
	}
}
