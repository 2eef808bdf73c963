// Package procurement gestiona el ciclo de compra: órdenes a proveedor, su flujo de
// aprobación y la recepción de entregas con alta de seriales.
package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// OrderUseCase crea órdenes de compra y avanza su estado.
type OrderUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repositories
	recorder *activity.Recorder
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. repos son los repositorios fuera de
// transacción, usados solo para lecturas.
func NewOrderUseCase(txRunner ports.TxRunner, repos ports.Repositories, recorder *activity.Recorder) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repos: repos, recorder: recorder, now: time.Now}
}

// CreateOrder crea la orden en estado requested con sus líneas, en una sola transacción.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, fmt.Errorf("%w: supplier_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden necesita al menos una línea", domain.ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if l.ItemID == "" {
			return nil, fmt.Errorf("%w: línea %d sin item_id", domain.ErrInvalidInput, i+1)
		}
		if l.Qty <= 0 {
			return nil, fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i+1, l.Qty)
		}
		if l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
		if l.TaxRate != nil && (l.TaxRate.IsNegative() || l.TaxRate.GreaterThan(decimal.NewFromInt(1))) {
			return nil, fmt.Errorf("%w: línea %d con tasa de IVA fuera de [0, 1]", domain.ErrInvalidInput, i+1)
		}
	}

	now := uc.now().UTC()
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		// 1. Referencias
		supplier, err := r.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}
		for _, l := range in.Lines {
			item, err := r.Items.GetByID(ctx, l.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, l.ItemID)
			}
		}

		// 2. Orden
		order := &entity.Order{
			ID:                 uuid.New().String(),
			SupplierID:         supplier.ID,
			InternalRef:        strings.TrimSpace(in.InternalRef),
			Status:             entity.OrderRequested,
			OrderedAt:          &now,
			ExpectedDeliveryAt: in.ExpectedDeliveryAt.TimePtr(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}

		// 3. Líneas
		for _, l := range in.Lines {
			rate := entity.DefaultTaxRate
			if l.TaxRate != nil {
				rate = *l.TaxRate
			}
			line := &entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ItemID:    l.ItemID,
				Qty:       l.Qty,
				UnitPrice: l.UnitPrice,
				TaxRate:   rate,
			}
			if err := r.Orders.AddLine(ctx, line); err != nil {
				return err
			}
		}

		uc.recorder.Record(ctx, r.Activity, entity.ActivityOrder, order.ID, "create", actorID, map[string]any{
			"supplier_id":  supplier.ID,
			"internal_ref": order.InternalRef,
			"lines":        len(in.Lines),
		})

		out, err = loadOrderView(ctx, r, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transition avanza la orden un paso en requested → internal_approval →
// sent_to_supplier → delivered. Cualquier otro salto es ErrInvalidTransition.
func (uc *OrderUseCase) Transition(ctx context.Context, actorID, orderID, status string) (*dto.OrderResponse, error) {
	to, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: estado de orden %q", domain.ErrInvalidInput, status)
	}

	now := uc.now().UTC()
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		order, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}
		from := order.Status
		if err := inventory.ApplyOrderTransition(order, to, now); err != nil {
			return err
		}
		if err := r.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}

		uc.recorder.Record(ctx, r.Activity, entity.ActivityOrder, order.ID, "status", actorID, map[string]any{
			"from": from,
			"to":   to,
		})

		out, err = loadOrderView(ctx, r, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve la orden materializada.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return loadOrderView(ctx, uc.repos, order)
}

// List lista órdenes (más recientes primero) materializadas.
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := uc.repos.Orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		view, err := loadOrderView(ctx, uc.repos, o)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

// NextStatuses estados alcanzables desde el actual de la orden.
func (uc *OrderUseCase) NextStatuses(ctx context.Context, id string) ([]string, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	next := inventory.NextOrderStatuses(order.Status)
	out := make([]string, 0, len(next))
	for _, s := range next {
		out = append(out, string(s))
	}
	return out, nil
}

// loadOrderView materializa proveedor, líneas, entregas y adjuntos de la orden
// usando los repositorios dados (dentro o fuera de transacción).
func loadOrderView(ctx context.Context, r ports.Repositories, order *entity.Order) (*dto.OrderResponse, error) {
	view := &dto.OrderResponse{
		ID:                 order.ID,
		Supplier:           dto.SupplierResponse{ID: order.SupplierID},
		InternalRef:        order.InternalRef,
		Status:             string(order.Status),
		OrderedAt:          order.OrderedAt,
		ExpectedDeliveryAt: dto.DatePtr(order.ExpectedDeliveryAt),
		Lines:              []dto.OrderLineResponse{},
		Deliveries:         []dto.DeliveryResponse{},
		Files:              []dto.FileResponse{},
	}

	supplier, err := r.Suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		view.Supplier = dto.ToSupplierResponse(supplier)
	}

	lines, err := r.Orders.ListLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, dto.OrderLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
		})
	}

	deliveries, err := r.Deliveries.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for _, d := range deliveries {
		view.Deliveries = append(view.Deliveries, dto.DeliveryResponse{
			ID:              d.ID,
			DeliveryNoteRef: d.DeliveryNoteRef,
			DeliveredAt:     dto.NewDate(d.DeliveredAt),
		})
	}

	files, err := r.Files.ListByEntity(ctx, entity.FileEntityOrder, order.ID)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		view.Files = append(view.Files, dto.ToFileResponse(f))
	}
	return view, nil
}
