package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stocky-api/internal/application/analytics"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// DashboardHandler dashboard, informes y lista de reposición.
type DashboardHandler struct {
	dashboard     *appanalytics.DashboardUseCase
	reports       *appanalytics.ReportUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(
	dashboard *appanalytics.DashboardUseCase,
	reports *appanalytics.ReportUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, replenishment: replenishment, log: log}
}

// GetDashboard godoc
// @Summary      Widgets del dashboard
// @Description  stock_by_category, pending_deliveries, warranties, assignments, stock_value, alerts.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.Widgets(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Informe agregado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "stock-by-site | orders-by-status | assignments-by-department"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{key} [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	out, err := h.reports.Report(c.Context(), c.Params("key"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportReportPDF godoc
// @Summary      Informe en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        key  path  string  true  "Clave del informe"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{key}/pdf [get]
func (h *DashboardHandler) ExportReportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.ExportPDF(c.Context(), c.Params("key"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// GetReplenishment godoc
// @Summary      Lista de reposición
// @Description  Artículos con umbral > 0 y stock por debajo o igual al umbral, por prioridad.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        site  query  string  false  "Sede"
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/replenishment [get]
func (h *DashboardHandler) GetReplenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.Context(), c.Query("site"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
