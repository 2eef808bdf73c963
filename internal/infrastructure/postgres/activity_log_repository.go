package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo log de auditoría append-only.
type ActivityLogRepo struct {
	q   Querier
	log *logger.Logger
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier, log *logger.Logger) *ActivityLogRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivityLogRepo{q: q, log: log}
}

// Append inserta la entrada dentro de un SAVEPOINT: si falla, la transacción
// de negocio que la contiene sigue siendo válida.
func (r *ActivityLogRepo) Append(ctx context.Context, e *entity.ActivityLog) error {
	sp, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("activity savepoint: %w", err)
	}
	var payload any
	if len(e.Payload) > 0 {
		payload = string(e.Payload)
	}
	_, err = sp.Exec(ctx, `
		INSERT INTO activity_logs (id, entity_type, entity_id, action, actor_user_id, at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)`,
		e.ID, e.EntityType, e.EntityID, e.Action, nullIfEmpty(e.ActorUserID), e.At, payload,
	)
	if err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			r.log.Warn().Err(rbErr).Msg("rollback activity savepoint")
		}
		return fmt.Errorf("insert activity log: %w", err)
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release activity savepoint: %w", err)
	}
	return nil
}
