package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item artículo del catálogo. El stock NO se guarda: se deriva contando los seriales IN_STOCK.
type Item struct {
	ID                string
	Name              string
	Category          string
	InternalRef       string
	DefaultSupplierID string
	DefaultUnitPrice  *decimal.Decimal
	Site              string
	LowStockThreshold *int
	Notes             string
	CreatedAt         time.Time
}
