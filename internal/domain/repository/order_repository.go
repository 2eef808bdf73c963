package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// OrderFilter filtros opcionales del listado de órdenes.
type OrderFilter struct {
	Status     entity.OrderStatus
	SupplierID string
	Search     string // sobre la referencia interna
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus persiste status, ordered_at, expected_delivery_at y updated_at.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	AddLine(ctx context.Context, line *entity.OrderLine) error
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
}

// DeliveryRepository define el puerto de persistencia para Delivery.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error)
}
