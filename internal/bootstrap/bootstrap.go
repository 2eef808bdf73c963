// Package bootstrap construye el grafo de casos de uso sobre un backend de
// persistencia (PostgreSQL o memoria) y lo entrega al router HTTP.
package bootstrap

import (
	"github.com/jhoicas/stocky-api/internal/application/activity"
	appanalytics "github.com/jhoicas/stocky-api/internal/application/analytics"
	"github.com/jhoicas/stocky-api/internal/application/auth"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/application/procurement"
	"github.com/jhoicas/stocky-api/internal/application/usecase"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/stocky-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/stocky-api/internal/interfaces/http"
	"github.com/jhoicas/stocky-api/pkg/config"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// Backend lo que un almacén debe aportar: unidad de trabajo, repositorios fuera de
// transacción (lecturas) y consultas de informes.
type Backend struct {
	Tx      ports.TxRunner
	Repos   ports.Repositories
	Reports repository.ReportRepository
}

// RouterDeps crea todos los casos de uso sobre b.
func RouterDeps(b Backend, cfg *config.Config, log *logger.Logger) httpRouter.RouterDeps {
	recorder := activity.NewRecorder(log.Component("activity"))
	ledger := inventory.NewStockLedger(b.Repos.Stock)
	replenishmentUC := inventory.NewReplenishmentUseCase(b.Repos.Items, ledger)

	return httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(b.Repos.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		UserUC:     usecase.NewUserUseCase(b.Repos.Users),
		SupplierUC: usecase.NewSupplierUseCase(b.Tx, b.Repos.Suppliers, recorder),
		ItemUC:     usecase.NewItemUseCase(b.Tx, b.Repos.Items, ledger, recorder),
		FileUC:     usecase.NewFileUseCase(b.Tx, b.Repos.Files, recorder, cfg.Files.MaxUploadBytes()),
		OrderUC:    procurement.NewOrderUseCase(b.Tx, b.Repos, recorder),
		DeliveryUC: procurement.NewDeliveryUseCase(b.Tx, recorder, procurement.DeliveryConfig{
			DefaultWarrantyDays: cfg.Inventory.DefaultWarrantyDays,
		}),
		SerialUC:        inventory.NewSerialUseCase(b.Tx, b.Repos.Serials, recorder),
		AssignmentUC:    inventory.NewAssignmentUseCase(b.Tx, b.Repos.Assignments, recorder),
		ReplenishmentUC: replenishmentUC,
		DashboardUC: appanalytics.NewDashboardUseCase(b.Reports, replenishmentUC, appanalytics.DashboardConfig{
			WarrantyHorizonDays:    cfg.Inventory.WarrantyHorizonDays,
			RecentAssignmentsLimit: cfg.Inventory.RecentAssignmentsLimit,
		}),
		ReportUC:       appanalytics.NewReportUseCase(b.Reports, infrapdf.NewMarotoReportGenerator("es")),
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: cfg.Files.MaxUploadBytes(),
		Log:            log,
	}
}

// ServerConfig parámetros de Fiber derivados de la configuración.
func ServerConfig(cfg *config.Config) httpRouter.ServerConfig {
	return httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		BodyLimit:   int(cfg.Files.MaxUploadBytes()) + 1<<20, // margen para el resto del multipart
		SwaggerFile: "./docs/swagger.json",
	}
}
