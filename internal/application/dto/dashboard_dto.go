package dto

import "github.com/shopspring/decimal"

// DashboardWidget widget genérico del dashboard: Data depende de Key.
type DashboardWidget struct {
	Key   string         `json:"key"`
	Title string         `json:"title"`
	Data  map[string]any `json:"data"`
}

// DashboardResponse respuesta de GET /api/dashboard/widgets.
type DashboardResponse struct {
	Widgets []DashboardWidget `json:"widgets"`
}

// ReportRow fila clave/valor de un informe.
type ReportRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// ReportResponse informe tabular simple.
type ReportResponse struct {
	Title string      `json:"title"`
	Rows  []ReportRow `json:"rows"`
}

// ReplenishmentSuggestion artículo bajo su umbral de stock con la cantidad sugerida a pedir.
type ReplenishmentSuggestion struct {
	ItemID            string           `json:"item_id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Site              string           `json:"site,omitempty"`
	Stock             int              `json:"stock"`
	Threshold         int              `json:"threshold"`
	SuggestedQty      int              `json:"suggested_qty"`
	DefaultSupplierID string           `json:"default_supplier_id,omitempty"`
	EstimatedCost     *decimal.Decimal `json:"estimated_cost,omitempty"`
	Priority          int              `json:"priority"`
}
