package dto

import "github.com/shopspring/decimal"

// SerialResponse salida de un serial. Status y CurrentAssigneeUserID derivan del mismo estado.
type SerialResponse struct {
	ID                    string           `json:"id"`
	ItemID                string           `json:"item_id"`
	SerialNumber          string           `json:"serial_number"`
	DeliveryID            string           `json:"delivery_id,omitempty"`
	SupplierID            string           `json:"supplier_id,omitempty"`
	DeliveryDate          *Date            `json:"delivery_date"`
	WarrantyStart         *Date            `json:"warranty_start"`
	WarrantyEnd           *Date            `json:"warranty_end"`
	PurchasePrice         *decimal.Decimal `json:"purchase_price,omitempty"`
	Status                string           `json:"status"`
	CurrentAssigneeUserID *string          `json:"current_assignee_user_id"`
}

// UpdateSerialStatusRequest body para PATCH /api/serials/:id/status (reparación / baja).
type UpdateSerialStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_stock in_repair retired"`
}
