package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// SerialUseCase consulta seriales y gestiona reparación y baja.
type SerialUseCase struct {
	txRunner ports.TxRunner
	serials  repository.SerialRepository
	recorder *activity.Recorder
}

// NewSerialUseCase construye el caso de uso.
func NewSerialUseCase(txRunner ports.TxRunner, serials repository.SerialRepository, recorder *activity.Recorder) *SerialUseCase {
	return &SerialUseCase{txRunner: txRunner, serials: serials, recorder: recorder}
}

// Get devuelve un serial.
func (uc *SerialUseCase) Get(ctx context.Context, id string) (*dto.SerialResponse, error) {
	s, err := uc.serials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
	}
	out := dto.ToSerialResponse(s)
	return &out, nil
}

// List lista seriales filtrando por estado, artículo y/o asignación.
func (uc *SerialUseCase) List(ctx context.Context, filter repository.SerialFilter) ([]dto.SerialResponse, error) {
	list, err := uc.serials.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerialResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSerialResponse(s))
	}
	return out, nil
}

// ChangeStatus mueve un serial no asignado entre IN_STOCK, IN_REPAIR y RETIRED.
func (uc *SerialUseCase) ChangeStatus(ctx context.Context, actorID, id string, in dto.UpdateSerialStatusRequest) (*dto.SerialResponse, error) {
	target, ok := entity.ParseSerialStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	var out dto.SerialResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		s, err := r.Serials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
		}
		from := s.State.Status()
		next, err := inventory.ChangeSerialStatus(s.State, target)
		if err != nil {
			return err
		}
		if err := r.Serials.UpdateState(ctx, s.ID, next); err != nil {
			return err
		}
		s.State = next

		uc.recorder.Record(ctx, r.Activity, entity.ActivitySerial, s.ID, "status", actorID, map[string]any{
			"from": from,
			"to":   next.Status(),
		})
		out = dto.ToSerialResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
