package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// SerialFilter filtros opcionales del listado de seriales.
type SerialFilter struct {
	Status   entity.SerialStatus
	ItemID   string
	Assigned *bool // true: con asignatario; false: sin asignatario
}

// SerialRepository define el puerto de persistencia para Serial.
// Create devuelve domain.ErrDuplicate si el número de serie ya existe.
type SerialRepository interface {
	Create(ctx context.Context, serial *entity.Serial) error
	GetByID(ctx context.Context, id string) (*entity.Serial, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE): comprobar y cambiar el estado
	// deben ocurrir dentro de la misma transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Serial, error)
	// UpdateState escribe estado y asignatario juntos.
	UpdateState(ctx context.Context, id string, state entity.SerialState) error
	List(ctx context.Context, filter SerialFilter) ([]*entity.Serial, error)
}
