package main

import (
	"fmt"
	"time"

	"canteen/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development bearer tokens",
	}

	cmd.AddCommand(tokenMintCmd())

	return cmd
}

func tokenMintCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a bearer token with auth.jwtSecret",
		Long: `Sign a bearer token with auth.jwtSecret, shaped like the tokens the
identity provider issues. Meant for local development and smoke tests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := uuid.Parse(userID)
			if err != nil {
				return errors.Wrap(err, "invalid --user")
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}

			if ttl == 0 && e.cfg.Auth != nil {
				ttl = e.cfg.Auth.TokenTTL
			}

			tokenSvc, err := auth.NewJWTService(e.cfg)
			if err != nil {
				return err
			}

			token, err := tokenSvc.GenerateAccessToken(subject, email, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Subject user id (uuid)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to auth.tokenTtl, then 1h)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
