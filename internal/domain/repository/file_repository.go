package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// FileRepository define el puerto de persistencia para adjuntos.
type FileRepository interface {
	Create(ctx context.Context, file *entity.StoredFile) error
	// GetByID incluye el contenido.
	GetByID(ctx context.Context, id string) (*entity.StoredFile, error)
	// ListByEntity devuelve solo metadatos, más recientes primero. Vacío = sin filtro.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.StoredFile, error)
	Delete(ctx context.Context, id string) (bool, error)
}
