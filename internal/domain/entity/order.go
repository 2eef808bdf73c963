package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra.
type OrderStatus string

const (
	OrderRequested        OrderStatus = "requested"
	OrderInternalApproval OrderStatus = "internal_approval"
	OrderSentToSupplier   OrderStatus = "sent_to_supplier"
	OrderDelivered        OrderStatus = "delivered"
)

// ParseOrderStatus valida un estado recibido desde fuera.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderRequested, OrderInternalApproval, OrderSentToSupplier, OrderDelivered:
		return st, true
	}
	return "", false
}

// DefaultTaxRate IVA por defecto de una línea (20%).
var DefaultTaxRate = decimal.NewFromFloat(0.2)

// Order orden de compra a un proveedor.
type Order struct {
	ID                 string
	SupplierID         string
	InternalRef        string
	Status             OrderStatus
	OrderedAt          *time.Time
	ExpectedDeliveryAt *time.Time // fecha; al entregar pasa a ser la fecha real
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderLine línea de una orden.
type OrderLine struct {
	ID        string
	OrderID   string
	ItemID    string
	Qty       int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}
