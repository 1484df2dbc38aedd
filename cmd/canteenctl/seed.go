package main

import (
	"fmt"

	"canteen/internal/infra/persistence/postgres"
	"canteen/internal/infra/seed"
	"canteen/internal/usecase/impl"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixtures into the database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "menu <file>",
		Short: "Upsert menu items from a YAML file",
		Long: `Upsert menu items from a YAML file. Items are matched by name, so
running the command again updates prices and availability in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := seed.LoadMenuFile(args[0])
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}

			return e.withDB(func(db *gorm.DB) error {
				menuUC := impl.NewMenuService(postgres.NewTransactionManager(db), e.logger)
				if err := menuUC.UpsertItems(cmd.Context(), items); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "upserted %d menu items\n", len(items))

				return nil
			})
		},
	})

	return cmd
}
