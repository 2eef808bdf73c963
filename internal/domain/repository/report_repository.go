package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// GroupCount fila de un agregado COUNT ... GROUP BY. Key vacía = sin definir.
type GroupCount struct {
	Key   string
	Count int
}

// WarrantyRow serial con su fin de garantía.
type WarrantyRow struct {
	SerialID     string
	SerialNumber string
	WarrantyEnd  time.Time
}

// ReportRepository consultas de solo lectura para dashboard e informes.
type ReportRepository interface {
	StockByCategory(ctx context.Context) ([]GroupCount, error)
	StockBySite(ctx context.Context) ([]GroupCount, error)
	OrdersByStatus(ctx context.Context) ([]GroupCount, error)
	ActiveAssignmentsByDepartment(ctx context.Context) ([]GroupCount, error)
	// OrdersInStatus órdenes en un estado (p. ej. entregas pendientes).
	OrdersInStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	// WarrantiesEndingBefore seriales con fin de garantía < before, ordenados por fecha.
	WarrantiesEndingBefore(ctx context.Context, before time.Time) ([]WarrantyRow, error)
	RecentAssignments(ctx context.Context, limit int) ([]*entity.Assignment, error)
	// InStockValue suma de purchase_price de los seriales IN_STOCK.
	InStockValue(ctx context.Context) (decimal.Decimal, error)
}
