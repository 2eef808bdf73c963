package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// idealStockFactor stock objetivo = umbral × 1.5.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición: artículos con umbral > 0
// cuyo stock (seriales IN_STOCK) no lo supera.
type ReplenishmentUseCase struct {
	items  repository.ItemRepository
	ledger *StockLedger
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(items repository.ItemRepository, ledger *StockLedger) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{items: items, ledger: ledger}
}

// GenerateReplenishmentList devuelve los artículos en o bajo su umbral con la cantidad sugerida
// de pedido, ordenados por déficit relativo (1 = más urgente). site vacío = todas las sedes.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, site string) ([]dto.ReplenishmentSuggestion, error) {
	// 1. Artículos con umbral
	items, err := uc.items.List(ctx, repository.ItemFilter{Site: site})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.LowStockThreshold != nil && *it.LowStockThreshold > 0 {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return []dto.ReplenishmentSuggestion{}, nil
	}

	// 2. Stock derivado
	stock, err := uc.ledger.AvailableStock(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 3. Sugerencias
	suggestions := make([]dto.ReplenishmentSuggestion, 0, len(ids))
	for _, it := range items {
		if it.LowStockThreshold == nil || *it.LowStockThreshold <= 0 {
			continue
		}
		threshold := *it.LowStockThreshold
		current := stock[it.ID]
		if current > threshold {
			continue
		}
		ideal := decimal.NewFromInt(int64(threshold)).Mul(idealStockFactor).Ceil().IntPart()
		qty := int(ideal) - current
		if qty < 0 {
			qty = 0
		}
		s := dto.ReplenishmentSuggestion{
			ItemID:            it.ID,
			Name:              it.Name,
			Category:          it.Category,
			Site:              it.Site,
			Stock:             current,
			Threshold:         threshold,
			SuggestedQty:      qty,
			DefaultSupplierID: it.DefaultSupplierID,
		}
		if it.DefaultUnitPrice != nil {
			cost := it.DefaultUnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			s.EstimatedCost = &cost
		}
		suggestions = append(suggestions, s)
	}

	// 4. Ordenar: mayor déficit relativo primero; desempate por déficit absoluto y nombre
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra := deficitRatio(a)
		rb := deficitRatio(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		da, db := a.Threshold-a.Stock, b.Threshold-b.Stock
		if da != db {
			return da > db
		}
		return a.Name < b.Name
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func deficitRatio(s dto.ReplenishmentSuggestion) decimal.Decimal {
	return decimal.NewFromInt(int64(s.Threshold - s.Stock)).Div(decimal.NewFromInt(int64(s.Threshold)))
}
