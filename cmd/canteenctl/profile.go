package main

import (
	"encoding/json"

	"canteen/internal/domain/entity"
	"canteen/internal/infra/persistence/postgres"
	"canteen/internal/usecase"
	"canteen/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage account profiles",
	}

	cmd.AddCommand(profileCreateCmd())

	return cmd
}

func profileCreateCmd() *cobra.Command {
	var (
		id       string
		email    string
		fullName string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a profile, typically for canteen staff or admins",
		Long: `Provision a profile. Students complete signup in the app; staff and
admin accounts are created here. --id must match the identity provider
subject of the account; a new id is generated when omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := entity.ParseRole(role)
			if err != nil {
				return err
			}

			input := &usecase.CreateProfileInput{
				Email:    email,
				FullName: fullName,
				Role:     parsedRole,
			}
			if id != "" {
				if input.ID, err = uuid.Parse(id); err != nil {
					return errors.Wrap(err, "invalid --id")
				}
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}

			return e.withDB(func(db *gorm.DB) error {
				profileUC := impl.NewProfileService(postgres.NewTransactionManager(db), e.logger)

				profile, err := profileUC.CreateProfile(cmd.Context(), input)
				if err != nil {
					return err
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")

				return errors.WithStack(encoder.Encode(profile))
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Identity provider subject (uuid)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&fullName, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", entity.RoleCanteenStaff.String(), "student, canteen_staff or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
