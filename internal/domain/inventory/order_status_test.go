package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
)

var allOrderStatuses = []entity.OrderStatus{
	entity.OrderRequested,
	entity.OrderInternalApproval,
	entity.OrderSentToSupplier,
	entity.OrderDelivered,
}

func TestCanTransitionOrder_SoloAvanzaUnPaso(t *testing.T) {
	for i, from := range allOrderStatuses {
		for j, to := range allOrderStatuses {
			want := j == i+1
			assert.Equal(t, want, inventory.CanTransitionOrder(from, to), "%s → %s", from, to)
		}
	}
}

func TestNextOrderStatuses_DeliveredEsTerminal(t *testing.T) {
	assert.Empty(t, inventory.NextOrderStatuses(entity.OrderDelivered))
	assert.Equal(t, []entity.OrderStatus{entity.OrderInternalApproval}, inventory.NextOrderStatuses(entity.OrderRequested))
}

func TestApplyOrderTransition_RecorridoCompleto(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	order := &entity.Order{Status: entity.OrderRequested}

	require.NoError(t, inventory.ApplyOrderTransition(order, entity.OrderInternalApproval, now))
	require.NoError(t, inventory.ApplyOrderTransition(order, entity.OrderSentToSupplier, now))
	require.NotNil(t, order.OrderedAt)
	assert.Equal(t, now, *order.OrderedAt)

	require.NoError(t, inventory.ApplyOrderTransition(order, entity.OrderDelivered, now))
	assert.Equal(t, entity.OrderDelivered, order.Status)

	err := inventory.ApplyOrderTransition(order, entity.OrderRequested, now)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderDelivered, order.Status, "el estado no cambia tras una transición rechazada")
}

func TestApplyOrderTransition_MismoEstadoInvalido(t *testing.T) {
	for _, s := range allOrderStatuses {
		order := &entity.Order{Status: s}
		err := inventory.ApplyOrderTransition(order, s, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s → %s", s, s)
	}
}

func TestApplyOrderTransition_OrderedAtNoSeSobrescribe(t *testing.T) {
	original := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	order := &entity.Order{Status: entity.OrderInternalApproval, OrderedAt: &original}

	require.NoError(t, inventory.ApplyOrderTransition(order, entity.OrderSentToSupplier, original.AddDate(0, 1, 0)))
	assert.Equal(t, original, *order.OrderedAt)
}

func TestApplyOrderTransition_DeliveredSobrescribeFechaEsperada(t *testing.T) {
	expected := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 5, 22, 10, 0, 0, time.UTC)
	order := &entity.Order{Status: entity.OrderSentToSupplier, ExpectedDeliveryAt: &expected}

	require.NoError(t, inventory.ApplyOrderTransition(order, entity.OrderDelivered, now))
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), *order.ExpectedDeliveryAt)
}
