package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/application/analytics"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

func datePtr(t time.Time) *time.Time { return &t }

func seededStore() *memory.Store {
	store := memory.NewStore()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	price := decimal.NewFromInt(500)

	store.PutUser(entity.User{ID: "u-1", DisplayName: "Ana", Department: "IT"})
	store.PutUser(entity.User{ID: "u-2", DisplayName: "Luis", Department: "Ventas"})
	store.PutItem(entity.Item{ID: "laptop", Name: "Portátil", Category: "IT", Site: "Madrid", LowStockThreshold: intPtr(5)})
	store.PutItem(entity.Item{ID: "chair", Name: "Silla", Category: "Mobiliario", Site: "Sevilla"})
	store.PutSerial(entity.Serial{ID: "s1", ItemID: "laptop", SerialNumber: "L1", PurchasePrice: &price,
		WarrantyEnd: datePtr(today.AddDate(0, 0, 30)), State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s2", ItemID: "laptop", SerialNumber: "L2", PurchasePrice: &price,
		WarrantyEnd: datePtr(today.AddDate(0, 0, -1)), State: entity.AssignedTo{UserID: "u-1"}})
	store.PutSerial(entity.Serial{ID: "s3", ItemID: "chair", SerialNumber: "C1", PurchasePrice: &price,
		WarrantyEnd: datePtr(today.AddDate(1, 0, 0)), State: entity.InStock{}})
	return store
}

func newDashboard(store *memory.Store) *analytics.DashboardUseCase {
	repos := store.Repositories()
	repl := inventory.NewReplenishmentUseCase(repos.Items, inventory.NewStockLedger(repos.Stock))
	return analytics.NewDashboardUseCase(store.Reports(), repl, analytics.DashboardConfig{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestWidgets_SeisEnOrden(t *testing.T) {
	out, err := newDashboard(seededStore()).Widgets(context.Background())
	require.NoError(t, err)

	keys := make([]string, 0, len(out.Widgets))
	byKey := map[string]dto.DashboardWidget{}
	for _, w := range out.Widgets {
		keys = append(keys, w.Key)
		byKey[w.Key] = w
	}
	assert.Equal(t, []string{
		analytics.WidgetStockByCategory,
		analytics.WidgetPendingDeliveries,
		analytics.WidgetWarranties,
		analytics.WidgetAssignments,
		analytics.WidgetStockValue,
		analytics.WidgetAlerts,
	}, keys)

	assert.Equal(t, 2, byKey[analytics.WidgetStockByCategory].Data["total"])
	assert.Equal(t, "1000.00", byKey[analytics.WidgetStockValue].Data["total"])
	warranties := byKey[analytics.WidgetWarranties].Data
	assert.Equal(t, 2, warranties["count"], "L1 vence en 30 días y L2 ya venció; C1 queda fuera del horizonte")
	assert.Equal(t, 1, warranties["expired_count"])
	serials := warranties["serials"].([]map[string]any)
	require.Len(t, serials, 2)
	assert.Equal(t, "L2", serials[0]["serial_number"])
	assert.Equal(t, true, serials[0]["expired"])
	assert.Equal(t, "L1", serials[1]["serial_number"])
	assert.Equal(t, false, serials[1]["expired"])

	alerts := byKey[analytics.WidgetAlerts].Data
	assert.Equal(t, 2, alerts["count"], "portátil bajo umbral + garantía vencida de L2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes
// ──────────────────────────────────────────────────────────────────────────────

type mockPDFGenerator struct {
	mock.Mock
}

func (m *mockPDFGenerator) Generate(report dto.ReportResponse, generatedAt time.Time) ([]byte, error) {
	args := m.Called(report, generatedAt)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestReport_OrdersByStatusIncluyeTodosLosEstados(t *testing.T) {
	uc := analytics.NewReportUseCase(memory.NewStore().Reports(), new(mockPDFGenerator))

	out, err := uc.Report(context.Background(), analytics.ReportOrdersByStatus)
	require.NoError(t, err)
	require.Len(t, out.Rows, 4)
	assert.Equal(t, "requested", out.Rows[0].Key)
	assert.Equal(t, 0.0, out.Rows[0].Value)
}

func TestReport_AsignacionesPorDepartamento(t *testing.T) {
	store := seededStore()
	uc := analytics.NewReportUseCase(store.Reports(), new(mockPDFGenerator))

	out, err := uc.Report(context.Background(), analytics.ReportAssignmentsByDepartment)
	require.NoError(t, err)
	// sin asignaciones registradas: el serial asignado por semilla no cuenta
	assert.Empty(t, out.Rows)
}

func TestReport_Desconocido(t *testing.T) {
	uc := analytics.NewReportUseCase(memory.NewStore().Reports(), new(mockPDFGenerator))

	_, err := uc.Report(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportPDF(t *testing.T) {
	gen := new(mockPDFGenerator)
	gen.On("Generate", mock.MatchedBy(func(r dto.ReportResponse) bool {
		return r.Title == "Stock por sede" && len(r.Rows) == 2
	}), mock.Anything).Return([]byte("%PDF"), nil).Once()
	uc := analytics.NewReportUseCase(seededStore().Reports(), gen)

	pdf, filename, err := uc.ExportPDF(context.Background(), analytics.ReportStockBySite)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Regexp(t, `^stock-by-site-\d{8}\.pdf$`, filename)
	gen.AssertExpectations(t)
}

func TestExportPDF_ErrorDelGenerador(t *testing.T) {
	gen := new(mockPDFGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("fuente no encontrada"))
	uc := analytics.NewReportUseCase(seededStore().Reports(), gen)

	_, _, err := uc.ExportPDF(context.Background(), analytics.ReportStockBySite)
	assert.ErrorContains(t, err, "fuente no encontrada")
}
