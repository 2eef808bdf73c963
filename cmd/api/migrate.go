package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stocky-api/internal/infrastructure/postgres"
)

var migrateFlags struct {
	adminEmail    string
	adminPassword string
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema SQL embebido en PostgreSQL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
		if err != nil {
			return err
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")

		if migrateFlags.adminEmail != "" {
			admin, err := adminUser(migrateFlags.adminEmail, migrateFlags.adminPassword)
			if err != nil {
				return err
			}
			if err := postgres.UpsertUser(ctx, pool, admin); err != nil {
				return fmt.Errorf("crear administrador: %w", err)
			}
			log.Info().Str("email", admin.Email).Msg("administrador listo")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFlags.adminEmail, "admin-email", "", "crear o actualizar un administrador")
	migrateCmd.Flags().StringVar(&migrateFlags.adminPassword, "admin-password", "", "password del administrador")
}
