package inventory

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// StockLedger calcula el stock disponible de cada artículo como el número de sus
// seriales IN_STOCK. No hay contador persistido que mantener sincronizado.
type StockLedger struct {
	stock repository.StockRepository
}

// NewStockLedger construye el ledger sobre el repositorio de lectura de stock.
func NewStockLedger(stock repository.StockRepository) *StockLedger {
	return &StockLedger{stock: stock}
}

// AvailableStock devuelve itemID → seriales IN_STOCK para cada id pedido
// (0 si el artículo no tiene ninguno).
func (l *StockLedger) AvailableStock(ctx context.Context, itemIDs []string) (map[string]int, error) {
	return CountAvailable(ctx, l.stock, itemIDs)
}

// CountAvailable igual que AvailableStock pero sobre un repositorio concreto
// (p. ej. el atado a una transacción en curso).
func CountAvailable(ctx context.Context, repo repository.StockRepository, itemIDs []string) (map[string]int, error) {
	ids := make([]string, 0, len(itemIDs))
	seen := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	out := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	counts, err := repo.CountInStock(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = counts[id]
	}
	return out, nil
}
