package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea en la creación de una orden. TaxRate nil = 0.20.
type OrderLineRequest struct {
	ItemID    string           `json:"item_id" validate:"required"`
	Qty       int              `json:"qty" validate:"required,min=1"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	TaxRate   *decimal.Decimal `json:"tax_rate,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID         string             `json:"supplier_id" validate:"required"`
	InternalRef        string             `json:"internal_ref,omitempty" validate:"omitempty,max=100"`
	ExpectedDeliveryAt *Date              `json:"expected_delivery_at,omitempty"`
	Lines              []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RegisterDeliveryRequest body para POST /api/orders/:id/deliveries.
type RegisterDeliveryRequest struct {
	DeliveryNoteRef      string           `json:"delivery_note_ref,omitempty" validate:"omitempty,max=100"`
	DeliveredAt          *Date            `json:"delivered_at,omitempty"`
	SerialNumbers        []string         `json:"serial_numbers,omitempty"`
	ItemID               string           `json:"item_id,omitempty"`
	PurchasePrice        *decimal.Decimal `json:"purchase_price,omitempty"`
	WarrantyDurationDays *int             `json:"warranty_duration_days,omitempty"`
}

// OrderLineResponse línea de orden.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// DeliveryResponse recepción registrada.
type DeliveryResponse struct {
	ID              string `json:"id"`
	DeliveryNoteRef string `json:"delivery_note_ref,omitempty"`
	DeliveredAt     Date   `json:"delivered_at"`
}

// OrderResponse orden materializada: proveedor, líneas, entregas y adjuntos.
type OrderResponse struct {
	ID                 string              `json:"id"`
	Supplier           SupplierResponse    `json:"supplier"`
	InternalRef        string              `json:"internal_ref,omitempty"`
	Status             string              `json:"status"`
	OrderedAt          *time.Time          `json:"ordered_at"`
	ExpectedDeliveryAt *Date               `json:"expected_delivery_at"`
	Lines              []OrderLineResponse `json:"lines"`
	Deliveries         []DeliveryResponse  `json:"deliveries"`
	Files              []FileResponse      `json:"files"`
}
