package cmd

import (
	"fmt"

	"github.com/lumenframe/albums/internal/config"
	"github.com/lumenframe/albums/internal/service"

	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <userKey>",
		Short: "Print a bearer token for userKey, signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			auth := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)

			token, err := auth.GenerateJWT(args[0])
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
