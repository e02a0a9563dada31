package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/comfortcurators/portal/modules/core/seed"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
)

func newSeedCmd() *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo accounts, or the accounts of a fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, app application.Application) error {
				ctx = composables.WithPool(ctx, app.DB())
				if fixturePath == "" {
					return app.Seeder().Seed(ctx, app)
				}
				raw, err := os.ReadFile(fixturePath)
				if err != nil {
					return err
				}
				fixture, err := seed.ParseFixture(raw)
				if err != nil {
					return err
				}
				return seed.Load(fixture)(ctx, app)
			})
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "YAML fixture file (defaults to the built-in demo fixture)")
	return cmd
}
