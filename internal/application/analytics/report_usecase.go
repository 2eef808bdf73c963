package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// Claves de informe.
const (
	ReportStockBySite             = "stock-by-site"
	ReportOrdersByStatus          = "orders-by-status"
	ReportAssignmentsByDepartment = "assignments-by-department"
)

// ReportUseCase informes agregados y su exportación a PDF.
type ReportUseCase struct {
	reports   repository.ReportRepository
	generator ReportPDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reports repository.ReportRepository, generator ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{reports: reports, generator: generator, now: time.Now}
}

// Report devuelve el informe identificado por key.
func (uc *ReportUseCase) Report(ctx context.Context, key string) (*dto.ReportResponse, error) {
	switch key {
	case ReportStockBySite:
		rows, err := uc.reports.StockBySite(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ReportResponse{Title: "Stock por sede", Rows: toReportRows(rows)}, nil

	case ReportOrdersByStatus:
		rows, err := uc.reports.OrdersByStatus(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ReportResponse{Title: "Órdenes por estado", Rows: ordersByStatusRows(rows)}, nil

	case ReportAssignmentsByDepartment:
		rows, err := uc.reports.ActiveAssignmentsByDepartment(ctx)
		if err != nil {
			return nil, err
		}
		return &dto.ReportResponse{Title: "Asignaciones activas por departamento", Rows: toReportRows(rows)}, nil
	}
	return nil, fmt.Errorf("%w: informe %q", domain.ErrNotFound, key)
}

// ExportPDF genera el PDF del informe. Devuelve bytes y nombre de archivo sugerido.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, key string) ([]byte, string, error) {
	report, err := uc.Report(ctx, key)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.generator.Generate(*report, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar informe %s: %w", key, err)
	}
	return pdf, fmt.Sprintf("%s-%s.pdf", key, now.Format("20060102")), nil
}

// ordersByStatusRows devuelve los cuatro estados en orden del flujo, con 0 si no hay órdenes.
func ordersByStatusRows(rows []repository.GroupCount) []dto.ReportRow {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}
	statuses := []entity.OrderStatus{
		entity.OrderRequested,
		entity.OrderInternalApproval,
		entity.OrderSentToSupplier,
		entity.OrderDelivered,
	}
	out := make([]dto.ReportRow, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, dto.ReportRow{Key: string(s), Value: float64(counts[string(s)])})
	}
	return out
}
