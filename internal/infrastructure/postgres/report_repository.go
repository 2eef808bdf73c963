package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura para dashboard e informes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador sobre el pool.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) groupCounts(ctx context.Context, op, query string, args ...any) ([]repository.GroupCount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// stockGroupedBy column es una columna fija de items, nunca entrada del usuario.
func (r *ReportRepo) stockGroupedBy(ctx context.Context, column string) ([]repository.GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(i.%[1]s, '') AS key, COUNT(s.id)
		FROM items i
		LEFT JOIN serials s ON s.item_id = i.id AND s.status = 'in_stock'
		GROUP BY key
		ORDER BY key`, column)
	return r.groupCounts(ctx, "stock by "+column, query)
}

func (r *ReportRepo) StockByCategory(ctx context.Context) ([]repository.GroupCount, error) {
	return r.stockGroupedBy(ctx, "category")
}

func (r *ReportRepo) StockBySite(ctx context.Context) ([]repository.GroupCount, error) {
	return r.stockGroupedBy(ctx, "site")
}

func (r *ReportRepo) OrdersByStatus(ctx context.Context) ([]repository.GroupCount, error) {
	return r.groupCounts(ctx, "orders by status", `
		SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
}

func (r *ReportRepo) ActiveAssignmentsByDepartment(ctx context.Context) ([]repository.GroupCount, error) {
	return r.groupCounts(ctx, "assignments by department", `
		SELECT COALESCE(u.department, '') AS key, COUNT(*)
		FROM assignments a
		LEFT JOIN users u ON u.id = a.assignee_user_id
		WHERE a.end_date IS NULL
		GROUP BY key
		ORDER BY key`)
}

// OrdersInStatus fecha prevista asc, sin fecha al final.
func (r *ReportRepo) OrdersInStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1
		ORDER BY expected_delivery_at ASC NULLS LAST, created_at`, string(status))
	if err != nil {
		return nil, fmt.Errorf("orders in status: %w", err)
	}
	return collectOrders(rows)
}

// WarrantiesEndingBefore excluye los seriales dados de baja.
func (r *ReportRepo) WarrantiesEndingBefore(ctx context.Context, before time.Time) ([]repository.WarrantyRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, serial_number, warranty_end
		FROM serials
		WHERE warranty_end IS NOT NULL AND warranty_end < $1 AND status <> 'retired'
		ORDER BY warranty_end, serial_number`, before)
	if err != nil {
		return nil, fmt.Errorf("warranties ending: %w", err)
	}
	defer rows.Close()

	var list []repository.WarrantyRow
	for rows.Next() {
		var w repository.WarrantyRow
		if err := rows.Scan(&w.SerialID, &w.SerialNumber, &w.WarrantyEnd); err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// RecentAssignments por start_date desc; limit <= 0 = sin límite.
func (r *ReportRepo) RecentAssignments(ctx context.Context, limit int) ([]*entity.Assignment, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, `SELECT `+assignmentColumns+` FROM assignments
		ORDER BY start_date DESC, created_at DESC LIMIT $1`, lim)
	if err != nil {
		return nil, fmt.Errorf("recent assignments: %w", err)
	}
	return collectAssignments(rows)
}

func (r *ReportRepo) InStockValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(purchase_price), 0) FROM serials WHERE status = 'in_stock'`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("in stock value: %w", err)
	}
	return v, nil
}
