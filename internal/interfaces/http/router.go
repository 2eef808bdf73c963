package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stocky-api/internal/application/analytics"
	"github.com/jhoicas/stocky-api/internal/application/auth"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/application/procurement"
	"github.com/jhoicas/stocky-api/internal/application/usecase"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	SupplierUC      *usecase.SupplierUseCase
	ItemUC          *usecase.ItemUseCase
	FileUC          *usecase.FileUseCase
	OrderUC         *procurement.OrderUseCase
	DeliveryUC      *procurement.DeliveryUseCase
	SerialUC        *inventory.SerialUseCase
	AssignmentUC    *inventory.AssignmentUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportUC        *appanalytics.ReportUseCase
	JWTSecret       string
	MaxUploadBytes  int64
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log.Component("auth"))
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	admin := entity.RoleAdmin
	buyers := RequireRole(admin, entity.RoleBuyer)
	storekeepers := RequireRole(admin, entity.RoleStorekeeper)
	staff := RequireRole(admin, entity.RoleBuyer, entity.RoleStorekeeper)

	// Users (solo lectura, no para viewer)
	userHandler := NewUserHandler(deps.UserUC, log.Component("users"))
	protected.Get("/users", staff, userHandler.List)
	protected.Get("/users/:id", staff, userHandler.GetByID)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC, log.Component("suppliers"))
	protected.Get("/suppliers", supplierHandler.List)
	protected.Get("/suppliers/:id", supplierHandler.GetByID)
	protected.Post("/suppliers", buyers, supplierHandler.Create)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC, log.Component("items"))
	protected.Get("/items", itemHandler.List)
	protected.Get("/items/:id", itemHandler.GetByID)
	protected.Post("/items", storekeepers, itemHandler.Create)

	// Orders + deliveries
	orderHandler := NewOrderHandler(deps.OrderUC, deps.DeliveryUC, log.Component("orders"))
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Get("/orders/:id/next-statuses", orderHandler.NextStatuses)
	protected.Post("/orders", buyers, orderHandler.Create)
	protected.Patch("/orders/:id/status", buyers, orderHandler.UpdateStatus)
	protected.Post("/orders/:id/deliveries", storekeepers, orderHandler.RegisterDelivery)

	// Serials
	serialHandler := NewSerialHandler(deps.SerialUC, log.Component("serials"))
	protected.Get("/serials", serialHandler.List)
	protected.Get("/serials/:id", serialHandler.GetByID)
	protected.Patch("/serials/:id/status", storekeepers, serialHandler.UpdateStatus)

	// Assignments
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC, log.Component("assignments"))
	protected.Get("/assignments", assignmentHandler.List)
	protected.Get("/assignments/:id", assignmentHandler.GetByID)
	protected.Post("/assignments", storekeepers, assignmentHandler.Create)
	protected.Post("/assignments/:id/return", storekeepers, assignmentHandler.Return)

	// Files
	fileHandler := NewFileHandler(deps.FileUC, deps.MaxUploadBytes, log.Component("files"))
	protected.Get("/files", fileHandler.List)
	protected.Get("/files/:id/download", fileHandler.Download)
	protected.Post("/files", staff, fileHandler.Upload)
	protected.Delete("/files/:id", staff, fileHandler.Delete)

	// Dashboard, informes y reposición
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.ReplenishmentUC, log.Component("dashboard"))
	protected.Get("/dashboard", dashboardHandler.GetDashboard)
	protected.Get("/replenishment", dashboardHandler.GetReplenishment)
	protected.Get("/reports/:key", dashboardHandler.GetReport)
	protected.Get("/reports/:key/pdf", dashboardHandler.ExportReportPDF)
}
