package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// orderTransitions tabla fija estado → estados siguientes permitidos.
// Solo avanza; DELIVERED es terminal.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderRequested:        {entity.OrderInternalApproval},
	entity.OrderInternalApproval: {entity.OrderSentToSupplier},
	entity.OrderSentToSupplier:   {entity.OrderDelivered},
	entity.OrderDelivered:        {},
}

// NextOrderStatuses devuelve los estados alcanzables desde from.
func NextOrderStatuses(from entity.OrderStatus) []entity.OrderStatus {
	next := orderTransitions[from]
	out := make([]entity.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionOrder indica si from → to está en la tabla. Nunca es válido from == to.
func CanTransitionOrder(from, to entity.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyOrderTransition valida y aplica la transición sobre order (servicio de dominio).
// Efectos además del estado:
//   - SENT_TO_SUPPLIER: ordered_at = now solo si estaba vacío.
//   - DELIVERED: expected_delivery_at = fecha de hoy (lo esperado pasa a ser lo real).
func ApplyOrderTransition(order *entity.Order, to entity.OrderStatus, now time.Time) error {
	if !CanTransitionOrder(order.Status, to) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, to)
	}
	order.Status = to
	switch to {
	case entity.OrderSentToSupplier:
		if order.OrderedAt == nil {
			t := now
			order.OrderedAt = &t
		}
	case entity.OrderDelivered:
		today := DateOf(now)
		order.ExpectedDeliveryAt = &today
	}
	order.UpdatedAt = now
	return nil
}
