// Package main provides canteenctl, the operations CLI for the canteen service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"canteen/config"
	logs "canteen/internal/infra/log"
	"canteen/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canteenctl",
		Short: "Operate the campus canteen service",
		Long: `Operate the campus canteen service.

Configuration is read from config/config.yaml with environment overrides,
the same way the API server reads it.

Examples:
  canteenctl migrate --triggers        # Create schema and realtime triggers
  canteenctl seed menu config/menu.yaml
  canteenctl profile create --email staff@campus.test --name "Counter A" --role canteen_staff
  canteenctl token mint --user <uuid>
`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		profileCmd(),
		tokenCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the canteenctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// env is the configuration and logger shared by every subcommand.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger}, nil
}

// withDB opens PostgreSQL for the duration of fn.
func (e *env) withDB(fn func(db *gorm.DB) error) error {
	db, err := postgres.Open(e.cfg, e.logger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	return fn(db)
}
