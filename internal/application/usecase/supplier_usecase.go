package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// SupplierUseCase casos de uso para proveedores (alta y consulta; no se editan).
type SupplierUseCase struct {
	txRunner ports.TxRunner
	repo     repository.SupplierRepository
	recorder *activity.Recorder
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(txRunner ports.TxRunner, repo repository.SupplierRepository, recorder *activity.Recorder) *SupplierUseCase {
	return &SupplierUseCase{txRunner: txRunner, repo: repo, recorder: recorder}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, actorID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del proveedor es obligatorio", domain.ErrInvalidInput)
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		if err := r.Suppliers.Create(ctx, supplier); err != nil {
			return err
		}
		uc.recorder.Record(ctx, r.Activity, entity.ActivitySupplier, supplier.ID, "create", actorID, map[string]any{
			"name": supplier.Name,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToSupplierResponse(supplier)
	return &out, nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	out := dto.ToSupplierResponse(supplier)
	return &out, nil
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return out, nil
}
