package inventory

import (
	"fmt"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// serialTransitions cambios de estado fuera del circuito de asignación.
// ASSIGNED solo se alcanza y se abandona vía asignar/devolver.
var serialTransitions = map[entity.SerialStatus][]entity.SerialStatus{
	entity.SerialInStock:  {entity.SerialInRepair, entity.SerialRetired},
	entity.SerialInRepair: {entity.SerialInStock, entity.SerialRetired},
	entity.SerialRetired:  {},
}

// ChangeSerialStatus calcula el nuevo estado de un serial para reparación/baja.
func ChangeSerialStatus(current entity.SerialState, target entity.SerialStatus) (entity.SerialState, error) {
	if target == entity.SerialAssigned {
		return nil, fmt.Errorf("%w: use la asignación para prestar un serial", domain.ErrInvalidInput)
	}
	if _, ok := current.(entity.AssignedTo); ok {
		return nil, fmt.Errorf("%w: el serial está asignado, debe devolverse primero", domain.ErrConflict)
	}
	for _, s := range serialTransitions[current.Status()] {
		if s == target {
			return entity.StateFor(target)
		}
	}
	return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current.Status(), target)
}
