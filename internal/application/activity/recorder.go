// Package activity registra el log de auditoría de cada mutación de negocio.
package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// Recorder añade entradas al log de actividad usando el repositorio de la transacción
// en curso: si la unidad de trabajo aborta, la entrada se descarta con ella.
// Es best-effort: un fallo al escribir se registra en el log de la aplicación y
// no altera el resultado de la operación de negocio.
type Recorder struct {
	log *logger.Logger
	now func() time.Time
}

// NewRecorder construye el recorder.
func NewRecorder(log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{log: log, now: time.Now}
}

// WithClock fija el reloj que sella At. nil vuelve a time.Now.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	r.now = now
	return r
}

// Record añade {entityType, entityID, action, actorID, payload}.
func (r *Recorder) Record(
	ctx context.Context,
	repo repository.ActivityLogRepository,
	entityType, entityID, action, actorID string,
	payload any,
) {
	if entityType == "" || entityID == "" || action == "" {
		r.log.Warn().
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("actividad incompleta, no se registra")
		return
	}
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			r.log.Warn().Err(err).Str("action", action).Msg("payload de actividad no serializable")
		} else {
			raw = b
		}
	}
	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		ActorUserID: actorID,
		At:          r.now().UTC(),
		Payload:     raw,
	}
	if err := repo.Append(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("no se pudo registrar la actividad")
	}
}
