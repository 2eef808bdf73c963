package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// ActivityLogRepository solo escritura: la lógica de negocio nunca lee el log.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLog) error
}
