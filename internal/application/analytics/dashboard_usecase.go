// Package analytics contiene los casos de uso de solo lectura: widgets del
// dashboard e informes exportables.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stocky-api/internal/domain/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// Claves de widget.
const (
	WidgetStockByCategory   = "stock_by_category"
	WidgetPendingDeliveries = "pending_deliveries"
	WidgetWarranties        = "warranties"
	WidgetAssignments       = "assignments"
	WidgetStockValue        = "stock_value"
	WidgetAlerts            = "alerts"
)

// DashboardConfig parámetros de los widgets.
type DashboardConfig struct {
	WarrantyHorizonDays    int // garantías que vencen en los próximos N días
	RecentAssignmentsLimit int
}

// DashboardUseCase construye los widgets del dashboard.
//
// Fuente de datos: ReportRepository (consultas read-only) y la lista de reposición
// para las alertas de stock bajo.
type DashboardUseCase struct {
	reports       repository.ReportRepository
	replenishment *inventory.ReplenishmentUseCase
	cfg           DashboardConfig
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reports repository.ReportRepository,
	replenishment *inventory.ReplenishmentUseCase,
	cfg DashboardConfig,
) *DashboardUseCase {
	if cfg.WarrantyHorizonDays <= 0 {
		cfg.WarrantyHorizonDays = 90
	}
	if cfg.RecentAssignmentsLimit <= 0 {
		cfg.RecentAssignmentsLimit = 10
	}
	return &DashboardUseCase{reports: reports, replenishment: replenishment, cfg: cfg, now: time.Now}
}

// Widgets calcula los seis widgets en paralelo. Si alguno falla se devuelve el
// primer error y se cancela el resto.
func (uc *DashboardUseCase) Widgets(ctx context.Context) (*dto.DashboardResponse, error) {
	today := domaininv.DateOf(uc.now())
	builders := []struct {
		key   string
		title string
		build func(ctx context.Context) (map[string]any, error)
	}{
		{WidgetStockByCategory, "Stock por categoría", uc.stockByCategory},
		{WidgetPendingDeliveries, "Entregas pendientes", uc.pendingDeliveries},
		{WidgetWarranties, "Garantías vencidas o por vencer", func(ctx context.Context) (map[string]any, error) {
			return uc.warranties(ctx, today)
		}},
		{WidgetAssignments, "Últimas asignaciones", uc.recentAssignments},
		{WidgetStockValue, "Valor del stock", uc.stockValue},
		{WidgetAlerts, "Alertas", func(ctx context.Context) (map[string]any, error) {
			return uc.alerts(ctx, today)
		}},
	}

	widgets := make([]dto.DashboardWidget, len(builders))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range builders {
		g.Go(func() error {
			data, err := b.build(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: %s: %w", b.key, err)
			}
			widgets[i] = dto.DashboardWidget{Key: b.key, Title: b.title, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Widgets: widgets}, nil
}

func (uc *DashboardUseCase) stockByCategory(ctx context.Context) (map[string]any, error) {
	rows, err := uc.reports.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return map[string]any{"rows": toReportRows(rows), "total": total}, nil
}

func (uc *DashboardUseCase) pendingDeliveries(ctx context.Context) (map[string]any, error) {
	orders, err := uc.reports.OrdersInStatus(ctx, entity.OrderSentToSupplier)
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		list = append(list, map[string]any{
			"order_id":             o.ID,
			"supplier_id":          o.SupplierID,
			"internal_ref":         o.InternalRef,
			"expected_delivery_at": dto.DatePtr(o.ExpectedDeliveryAt),
		})
	}
	return map[string]any{"count": len(list), "orders": list}, nil
}

func (uc *DashboardUseCase) warranties(ctx context.Context, today time.Time) (map[string]any, error) {
	horizon := today.AddDate(0, 0, uc.cfg.WarrantyHorizonDays+1)
	rows, err := uc.reports.WarrantiesEndingBefore(ctx, horizon)
	if err != nil {
		return nil, err
	}
	// incluye las ya vencidas, marcadas con expired
	list := make([]map[string]any, 0, len(rows))
	expired := 0
	for _, r := range rows {
		e := warrantyEntry(r)
		if r.WarrantyEnd.Before(today) {
			e["expired"] = true
			expired++
		} else {
			e["expired"] = false
		}
		list = append(list, e)
	}
	return map[string]any{
		"horizon_days":  uc.cfg.WarrantyHorizonDays,
		"count":         len(list),
		"expired_count": expired,
		"serials":       list,
	}, nil
}

func (uc *DashboardUseCase) recentAssignments(ctx context.Context) (map[string]any, error) {
	list, err := uc.reports.RecentAssignments(ctx, uc.cfg.RecentAssignmentsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAssignmentResponse(a))
	}
	return map[string]any{"assignments": out}, nil
}

func (uc *DashboardUseCase) stockValue(ctx context.Context) (map[string]any, error) {
	total, err := uc.reports.InStockValue(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"total": total.StringFixed(2)}, nil
}

func (uc *DashboardUseCase) alerts(ctx context.Context, today time.Time) (map[string]any, error) {
	low, err := uc.replenishment.GenerateReplenishmentList(ctx, "")
	if err != nil {
		return nil, err
	}
	expired, err := uc.reports.WarrantiesEndingBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	expiredList := make([]map[string]any, 0, len(expired))
	for _, r := range expired {
		expiredList = append(expiredList, warrantyEntry(r))
	}
	return map[string]any{
		"low_stock":          low,
		"expired_warranties": expiredList,
		"count":              len(low) + len(expiredList),
	}, nil
}

func warrantyEntry(r repository.WarrantyRow) map[string]any {
	return map[string]any{
		"serial_id":     r.SerialID,
		"serial_number": r.SerialNumber,
		"warranty_end":  dto.NewDate(r.WarrantyEnd),
	}
}

func toReportRows(rows []repository.GroupCount) []dto.ReportRow {
	out := make([]dto.ReportRow, 0, len(rows))
	for _, r := range rows {
		key := r.Key
		if key == "" {
			key = "sin definir"
		}
		out = append(out, dto.ReportRow{Key: key, Value: float64(r.Count)})
	}
	return out
}
