package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// AssignmentFilter filtros opcionales del listado de asignaciones.
type AssignmentFilter struct {
	UserID     string
	ActiveOnly bool
}

// AssignmentRepository define el puerto de persistencia para Assignment.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error)
	Close(ctx context.Context, id string, endDate time.Time) error
	// SetDocument enlaza el documento firmado de la asignación (adjunto).
	SetDocument(ctx context.Context, id, fileID string) error
	List(ctx context.Context, filter AssignmentFilter) ([]*entity.Assignment, error)
}
