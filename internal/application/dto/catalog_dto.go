package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact,omitempty" validate:"omitempty,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name              string           `json:"name" validate:"required,max=200"`
	Category          string           `json:"category" validate:"required,max=100"`
	InternalRef       string           `json:"internal_ref,omitempty" validate:"omitempty,max=100"`
	DefaultSupplierID string           `json:"default_supplier_id,omitempty" validate:"omitempty,uuid"`
	DefaultUnitPrice  *decimal.Decimal `json:"default_unit_price,omitempty"`
	Site              string           `json:"site,omitempty" validate:"omitempty,max=100"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	Notes             string           `json:"notes,omitempty"`
}

// ItemResponse salida de un artículo con su stock calculado a partir de los seriales.
type ItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	InternalRef       string           `json:"internal_ref,omitempty"`
	DefaultSupplierID string           `json:"default_supplier_id,omitempty"`
	DefaultUnitPrice  *decimal.Decimal `json:"default_unit_price,omitempty"`
	Site              string           `json:"site,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Stock             int              `json:"stock"`
	CreatedAt         time.Time        `json:"created_at"`
}
