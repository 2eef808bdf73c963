package repository

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios (datos de referencia gestionados fuera).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
