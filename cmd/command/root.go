package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/comfortcurators/portal/internal/server"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/configuration"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "command",
		Short:         "Comfort Curators maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(), newSeedCmd())
	return cmd
}

// withApp connects to the configured database, loads the modules and runs fn.
func withApp(ctx context.Context, fn func(ctx context.Context, app application.Application) error) error {
	conf := configuration.Use()
	defer conf.Unload()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	cancel()
	if err != nil {
		return err
	}
	defer pool.Close()

	app, err := server.NewApplication(conf, pool, conf.Logger())
	if err != nil {
		return err
	}
	return fn(ctx, app)
}
