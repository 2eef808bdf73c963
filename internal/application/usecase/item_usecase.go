package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo de artículos. Cada artículo se devuelve
// con su stock derivado de los seriales.
type ItemUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ItemRepository
	ledger   *inventory.StockLedger
	recorder *activity.Recorder
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner ports.TxRunner,
	repo repository.ItemRepository,
	ledger *inventory.StockLedger,
	recorder *activity.Recorder,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repo: repo, ledger: ledger, recorder: recorder}
}

// Create crea un artículo. Si indica proveedor por defecto, debe existir.
func (uc *ItemUseCase) Create(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: nombre y categoría son obligatorios", domain.ErrInvalidInput)
	}
	if in.DefaultUnitPrice != nil && in.DefaultUnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: default_unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
	}

	item := &entity.Item{
		ID:                uuid.New().String(),
		Name:              name,
		Category:          category,
		InternalRef:       strings.TrimSpace(in.InternalRef),
		DefaultSupplierID: in.DefaultSupplierID,
		DefaultUnitPrice:  in.DefaultUnitPrice,
		Site:              strings.TrimSpace(in.Site),
		LowStockThreshold: in.LowStockThreshold,
		Notes:             in.Notes,
		CreatedAt:         time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		if item.DefaultSupplierID != "" {
			s, err := r.Suppliers.GetByID(ctx, item.DefaultSupplierID)
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, item.DefaultSupplierID)
			}
		}
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		uc.recorder.Record(ctx, r.Activity, entity.ActivityItem, item.ID, "create", actorID, map[string]any{
			"name":     item.Name,
			"category": item.Category,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item, 0)
	return &out, nil
}

// GetByID obtiene un artículo con su stock. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	stock, err := uc.ledger.AvailableStock(ctx, []string{item.ID})
	if err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item, stock[item.ID])
	return &out, nil
}

// List lista artículos filtrados, cada uno con su stock (una sola consulta de conteo).
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.ID)
	}
	stock, err := uc.ledger.AvailableStock(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.ToItemResponse(it, stock[it.ID]))
	}
	return out, nil
}
