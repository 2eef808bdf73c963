package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
)

func TestChangeSerialStatus(t *testing.T) {
	tests := []struct {
		name    string
		current entity.SerialState
		target  entity.SerialStatus
		want    entity.SerialState
		wantErr error
	}{
		{"stock a reparación", entity.InStock{}, entity.SerialInRepair, entity.InRepair{}, nil},
		{"stock a baja", entity.InStock{}, entity.SerialRetired, entity.Retired{}, nil},
		{"reparación a stock", entity.InRepair{}, entity.SerialInStock, entity.InStock{}, nil},
		{"reparación a baja", entity.InRepair{}, entity.SerialRetired, entity.Retired{}, nil},
		{"baja es terminal", entity.Retired{}, entity.SerialInStock, nil, domain.ErrInvalidTransition},
		{"mismo estado", entity.InStock{}, entity.SerialInStock, nil, domain.ErrInvalidTransition},
		{"asignado requiere devolución", entity.AssignedTo{UserID: "u1"}, entity.SerialInRepair, nil, domain.ErrConflict},
		{"asignar no pasa por aquí", entity.InStock{}, entity.SerialAssigned, nil, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.ChangeSerialStatus(tt.current, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
