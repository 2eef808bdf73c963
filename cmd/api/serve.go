package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stocky-api/internal/application/auth"
	"github.com/jhoicas/stocky-api/internal/bootstrap"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/infrastructure/memory"
	"github.com/jhoicas/stocky-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stocky-api/internal/interfaces/http"
	"github.com/jhoicas/stocky-api/pkg/config"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

var serveFlags struct {
	migrate       bool
	adminEmail    string
	adminPassword string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Arranca la API HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.migrate, "migrate", false, "aplicar migraciones antes de arrancar (postgres)")
	serveCmd.Flags().StringVar(&serveFlags.adminEmail, "admin-email", os.Getenv("BOOTSTRAP_ADMIN_EMAIL"), "crear o actualizar un administrador al arrancar")
	serveCmd.Flags().StringVar(&serveFlags.adminPassword, "admin-password", os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"), "password del administrador inicial")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, seed, cleanup, err := openBackend(ctx, cfg, log, serveFlags.migrate)
	if err != nil {
		return err
	}
	defer cleanup()

	if serveFlags.adminEmail != "" {
		admin, err := adminUser(serveFlags.adminEmail, serveFlags.adminPassword)
		if err != nil {
			return err
		}
		if err := seed(ctx, admin); err != nil {
			return fmt.Errorf("crear administrador: %w", err)
		}
		log.Info().Str("email", admin.Email).Msg("administrador inicial listo")
	}

	app := httpRouter.NewServer(bootstrap.ServerConfig(cfg), bootstrap.RouterDeps(backend, cfg, log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("servidor HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("aplicación detenida")
	return nil
}

// userSeeder alta idempotente de un usuario en el backend elegido.
type userSeeder func(ctx context.Context, u *entity.User) error

// openBackend abre el almacén configurado en STORE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (bootstrap.Backend, userSeeder, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		seed := func(_ context.Context, u *entity.User) error {
			store.PutUser(*u)
			return nil
		}
		return bootstrap.Backend{Tx: store, Repos: store.Repositories(), Reports: store.Reports()}, seed, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return bootstrap.Backend{}, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if migrate {
		if _, err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			pool.Close()
			return bootstrap.Backend{}, nil, nil, err
		}
	}
	seed := func(ctx context.Context, u *entity.User) error {
		return postgres.UpsertUser(ctx, pool, u)
	}
	backend := bootstrap.Backend{
		Tx:      postgres.NewTxRunner(pool, log.Component("tx")),
		Repos:   postgres.NewRepositories(pool, log.Component("postgres")),
		Reports: postgres.NewReportRepository(pool),
	}
	return backend, seed, pool.Close, nil
}

func adminUser(email, password string) (*entity.User, error) {
	if len(password) < 8 {
		return nil, fmt.Errorf("admin-password debe tener al menos 8 caracteres")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &entity.User{
		ID:           uuid.New().String(),
		DisplayName:  "Administrador",
		Email:        email,
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
