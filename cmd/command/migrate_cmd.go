package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/comfortcurators/portal/pkg/application"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}
	cmd.AddCommand(
		migrateSubCmd("up", "Apply every pending migration", func(ctx context.Context, m application.MigrationManager) error {
			return m.Run(ctx)
		}),
		migrateSubCmd("down", "Roll back the latest migration", func(ctx context.Context, m application.MigrationManager) error {
			return m.Rollback(ctx)
		}),
		migrateSubCmd("status", "Print the migration status", func(ctx context.Context, m application.MigrationManager) error {
			return m.Status(ctx)
		}),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(ctx context.Context, m application.MigrationManager) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, app application.Application) error {
				return run(ctx, app.Migrations())
			})
		},
	}
}
