package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stocky-api/internal/application/auth"
	"github.com/jhoicas/stocky-api/internal/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id|email>",
	Short: "Emite un JWT para un usuario existente (integraciones, pruebas)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		backend, _, cleanup, err := openBackend(ctx, cfg, log, false)
		if err != nil {
			return err
		}
		defer cleanup()

		userID := args[0]
		if strings.Contains(userID, "@") {
			u, err := backend.Repos.Users.GetByEmail(ctx, userID)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
			}
			userID = u.ID
		}

		authUC := auth.NewAuthUseCase(backend.Repos.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		tok, err := authUC.IssueToken(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}
