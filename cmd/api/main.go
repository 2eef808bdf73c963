package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stocky-api/pkg/config"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stocky",
	Short: "Inventario de equipos: compras, recepciones, seriales y asignaciones",
	Long: `API de inventario y ciclo de vida de activos: proveedores, artículos,
órdenes de compra, recepciones con números de serie y préstamos a usuarios.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime carga y valida la configuración y construye el logger.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	return cfg, log, nil
}
