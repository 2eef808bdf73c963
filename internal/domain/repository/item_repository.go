package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// ItemFilter filtros opcionales del listado de artículos (vacío = sin filtro).
type ItemFilter struct {
	Category   string
	SupplierID string
	Site       string
	Search     string // nombre o referencia interna, sin distinguir mayúsculas
}

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
}
