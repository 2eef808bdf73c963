package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

func TestGenerateReplenishmentList(t *testing.T) {
	store := memory.NewStore()
	price := decimal.NewFromInt(800)
	store.PutItem(entity.Item{ID: "laptop", Name: "Portátil", Category: "IT", LowStockThreshold: intPtr(4), DefaultUnitPrice: &price})
	store.PutItem(entity.Item{ID: "mouse", Name: "Ratón", Category: "IT", LowStockThreshold: intPtr(2)})
	store.PutItem(entity.Item{ID: "chair", Name: "Silla", Category: "Mobiliario", LowStockThreshold: intPtr(1)})
	store.PutItem(entity.Item{ID: "desk", Name: "Mesa", Category: "Mobiliario"})
	store.PutSerial(entity.Serial{ID: "s1", ItemID: "laptop", SerialNumber: "L1", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s2", ItemID: "mouse", SerialNumber: "M1", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s3", ItemID: "mouse", SerialNumber: "M2", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s4", ItemID: "chair", SerialNumber: "C1", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s5", ItemID: "chair", SerialNumber: "C2", State: entity.InStock{}})

	repos := store.Repositories()
	uc := appinv.NewReplenishmentUseCase(repos.Items, appinv.NewStockLedger(repos.Stock))

	list, err := uc.GenerateReplenishmentList(context.Background(), "")
	require.NoError(t, err)

	// chair (2 > 1) y desk (sin umbral) quedan fuera; mouse está justo en el umbral
	require.Len(t, list, 2)
	assert.Equal(t, "laptop", list[0].ItemID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 5, list[0].SuggestedQty) // ceil(4×1.5) − 1
	require.NotNil(t, list[0].EstimatedCost)
	assert.True(t, decimal.NewFromInt(4000).Equal(*list[0].EstimatedCost))

	assert.Equal(t, "mouse", list[1].ItemID)
	assert.Equal(t, 1, list[1].SuggestedQty) // 3 − 2
	assert.Nil(t, list[1].EstimatedCost)
}
