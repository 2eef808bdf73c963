package repository

import "context"

// StockRepository proyección de lectura del stock disponible.
// El stock no se almacena: se cuenta sobre los seriales IN_STOCK en cada llamada.
type StockRepository interface {
	// CountInStock devuelve itemID → número de seriales IN_STOCK.
	// Los artículos sin seriales pueden faltar en el mapa.
	CountInStock(ctx context.Context, itemIDs []string) (map[string]int, error)
}
