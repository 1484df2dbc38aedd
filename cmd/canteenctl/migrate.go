package main

import (
	"fmt"

	"canteen/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func migrateCmd() *cobra.Command {
	var (
		triggers bool
		channel  string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update the database schema.

With --triggers, row change triggers are installed that NOTIFY the realtime
channel. They are required when realtime.source is postgres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			if channel == "" {
				channel = e.cfg.Realtime.Channel
			}

			return e.withDB(func(db *gorm.DB) error {
				if err := postgres.Migrate(cmd.Context(), db, postgres.MigrateOptions{
					ChangeTriggers: triggers,
					Channel:        channel,
				}); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&triggers, "triggers", false, "Install change notify triggers for the realtime feed")
	cmd.Flags().StringVar(&channel, "channel", "", "NOTIFY channel (defaults to realtime.channel)")

	return cmd
}
