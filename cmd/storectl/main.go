// Command storectl is the operator CLI: schema migrations and admin accounts.
package main

import (
	"context"
	"fmt"
	"os"

	"storefront/config"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Storefront operator tooling",
	Long: `storectl manages the storefront database outside the API process:
apply or roll back schema migrations, and create or promote admin accounts.

Configuration is read the same way as the API server (config.yaml plus
environment overrides, with an optional .env file).`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withApp starts a minimal fx graph (config, logger, database, user store),
// fills targets from it and returns a stop func.
func withApp(ctx context.Context, targets ...any) (func(), error) {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewUserRepository,
			auth.NewBcryptHasher,
		),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to build application")
	}

	if err := app.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start application")
	}

	return func() {
		if err := app.Stop(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
		}
	}, nil
}
