package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// AssignmentUseCase presta seriales a usuarios y los devuelve al almacén.
// Asignación y estado del serial cambian siempre en la misma transacción.
type AssignmentUseCase struct {
	txRunner    ports.TxRunner
	assignments repository.AssignmentRepository
	recorder    *activity.Recorder
	now         func() time.Time
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	txRunner ports.TxRunner,
	assignments repository.AssignmentRepository,
	recorder *activity.Recorder,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		txRunner:    txRunner,
		assignments: assignments,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Assign crea una asignación activa y pasa el serial de IN_STOCK a ASSIGNED.
// Bloquea la fila del serial (SELECT FOR UPDATE): de dos asignaciones simultáneas
// del mismo serial solo una tiene éxito, la otra recibe ErrConflict.
func (uc *AssignmentUseCase) Assign(ctx context.Context, actorID string, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if in.SerialID == "" || in.AssigneeUserID == "" {
		return nil, fmt.Errorf("%w: serial_id y assignee_user_id son obligatorios", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	start := inventory.DateOf(now)
	if t := in.StartDate.TimePtr(); t != nil {
		start = inventory.DateOf(*t)
	}
	expected := in.ExpectedReturnDate.TimePtr()
	if expected != nil && expected.Before(start) {
		return nil, fmt.Errorf("%w: la fecha de devolución prevista es anterior al inicio", domain.ErrInvalidInput)
	}

	var out dto.AssignmentResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		// 1. Bloquear el serial y comprobar que está disponible
		serial, err := r.Serials.GetForUpdate(ctx, in.SerialID)
		if err != nil {
			return err
		}
		if serial == nil {
			return fmt.Errorf("%w: serial %s", domain.ErrNotFound, in.SerialID)
		}
		if _, ok := serial.State.(entity.InStock); !ok {
			return fmt.Errorf("%w: el serial %s no está en stock (estado %s)", domain.ErrConflict, serial.SerialNumber, serial.State.Status())
		}

		// 2. El usuario debe existir
		user, err := r.Users.GetByID(ctx, in.AssigneeUserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, in.AssigneeUserID)
		}

		// 3. Asignación + cambio de estado
		a := &entity.Assignment{
			ID:                 uuid.New().String(),
			SerialID:           serial.ID,
			AssigneeUserID:     user.ID,
			StartDate:          start,
			ExpectedReturnDate: expected,
			Notes:              in.Notes,
			CreatedAt:          now,
		}
		if err := r.Assignments.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Serials.UpdateState(ctx, serial.ID, entity.AssignedTo{UserID: user.ID}); err != nil {
			return err
		}

		uc.recorder.Record(ctx, r.Activity, entity.ActivityAssignment, a.ID, "assign", actorID, map[string]any{
			"serial_id":        serial.ID,
			"serial_number":    serial.SerialNumber,
			"assignee_user_id": user.ID,
			"start_date":       start.Format(dto.DateLayout),
		})
		out = dto.ToAssignmentResponse(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseAssignment cierra la asignación con fecha de hoy y devuelve el serial a IN_STOCK.
// Cerrar una asignación ya cerrada no cambia nada y devuelve su estado actual.
func (uc *AssignmentUseCase) CloseAssignment(ctx context.Context, actorID, id string) (*dto.AssignmentResponse, error) {
	today := inventory.DateOf(uc.now())

	var out dto.AssignmentResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		a, err := r.Assignments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: asignación %s", domain.ErrNotFound, id)
		}
		if !a.Active() {
			out = dto.ToAssignmentResponse(a)
			return nil
		}

		if err := r.Assignments.Close(ctx, a.ID, today); err != nil {
			return err
		}
		a.EndDate = &today

		// El serial puede haber sido eliminado por fuera: la asignación se cierra igualmente.
		serial, err := r.Serials.GetForUpdate(ctx, a.SerialID)
		if err != nil {
			return err
		}
		if serial != nil {
			if _, assigned := serial.State.(entity.AssignedTo); assigned {
				if err := r.Serials.UpdateState(ctx, serial.ID, entity.InStock{}); err != nil {
					return err
				}
			}
		}

		uc.recorder.Record(ctx, r.Activity, entity.ActivityAssignment, a.ID, "return", actorID, map[string]any{
			"serial_id": a.SerialID,
			"end_date":  today.Format(dto.DateLayout),
		})
		out = dto.ToAssignmentResponse(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get devuelve una asignación.
func (uc *AssignmentUseCase) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := uc.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: asignación %s", domain.ErrNotFound, id)
	}
	out := dto.ToAssignmentResponse(a)
	return &out, nil
}

// List lista asignaciones, más recientes primero.
func (uc *AssignmentUseCase) List(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	list, err := uc.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAssignmentResponse(a))
	}
	return out, nil
}
