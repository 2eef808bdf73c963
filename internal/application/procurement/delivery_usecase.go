package procurement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/inventory"
)

// DeliveryConfig parámetros de recepción.
type DeliveryConfig struct {
	DefaultWarrantyDays int // <= 0 usa inventory.DefaultWarrantyDays
}

// DeliveryUseCase registra entregas de una orden y da de alta sus seriales.
type DeliveryUseCase struct {
	txRunner ports.TxRunner
	recorder *activity.Recorder
	cfg      DeliveryConfig
	now      func() time.Time
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner ports.TxRunner, recorder *activity.Recorder, cfg DeliveryConfig) *DeliveryUseCase {
	if cfg.DefaultWarrantyDays <= 0 {
		cfg.DefaultWarrantyDays = inventory.DefaultWarrantyDays
	}
	return &DeliveryUseCase{txRunner: txRunner, recorder: recorder, cfg: cfg, now: time.Now}
}

// RegisterDelivery registra una entrega y crea un serial IN_STOCK por número recibido,
// con la garantía anclada a la fecha de entrega. No exige ningún estado concreto de la orden.
// Todo o nada: si un número ya existe (ErrConflict) no se crea ni la entrega ni ningún serial.
func (uc *DeliveryUseCase) RegisterDelivery(ctx context.Context, actorID, orderID string, in dto.RegisterDeliveryRequest) (*dto.OrderResponse, error) {
	now := uc.now().UTC()

	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		// 1. Orden
		order, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}

		// 2. Validar la entrada
		numbers, err := normalizeSerialNumbers(in.SerialNumbers)
		if err != nil {
			return err
		}
		if len(numbers) > 0 && in.ItemID == "" {
			return fmt.Errorf("%w: item_id es obligatorio al recibir seriales", domain.ErrInvalidInput)
		}
		if in.WarrantyDurationDays != nil && *in.WarrantyDurationDays < 0 {
			return fmt.Errorf("%w: warranty_duration_days no puede ser negativo", domain.ErrInvalidInput)
		}
		if in.PurchasePrice != nil && in.PurchasePrice.IsNegative() {
			return fmt.Errorf("%w: purchase_price no puede ser negativo", domain.ErrInvalidInput)
		}
		if in.ItemID != "" {
			item, err := r.Items.GetByID(ctx, in.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, in.ItemID)
			}
		}

		// 3. Entrega
		deliveredAt := inventory.DateOf(now)
		if t := in.DeliveredAt.TimePtr(); t != nil {
			deliveredAt = inventory.DateOf(*t)
		}
		delivery := &entity.Delivery{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			DeliveryNoteRef: strings.TrimSpace(in.DeliveryNoteRef),
			DeliveredAt:     deliveredAt,
			CreatedAt:       now,
		}
		if err := r.Deliveries.Create(ctx, delivery); err != nil {
			return err
		}

		// 4. Seriales
		days := uc.cfg.DefaultWarrantyDays
		if in.WarrantyDurationDays != nil && *in.WarrantyDurationDays > 0 {
			days = *in.WarrantyDurationDays
		}
		start, end := inventory.WarrantyWindow(deliveredAt, days)
		for _, sn := range numbers {
			serial := &entity.Serial{
				ID:            uuid.New().String(),
				ItemID:        in.ItemID,
				SerialNumber:  sn,
				DeliveryID:    delivery.ID,
				DeliveryDate:  &deliveredAt,
				WarrantyStart: &start,
				WarrantyEnd:   &end,
				SupplierID:    order.SupplierID,
				PurchasePrice: in.PurchasePrice,
				State:         entity.InStock{},
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := r.Serials.Create(ctx, serial); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return fmt.Errorf("%w: el número de serie %s ya existe", domain.ErrConflict, sn)
				}
				return err
			}
		}

		uc.recorder.Record(ctx, r.Activity, entity.ActivityOrder, order.ID, "delivery", actorID, map[string]any{
			"delivery_id":       delivery.ID,
			"delivery_note_ref": delivery.DeliveryNoteRef,
			"delivered_at":      deliveredAt.Format(dto.DateLayout),
			"item_id":           in.ItemID,
			"serial_numbers":    numbers,
		})

		out, err = loadOrderView(ctx, r, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeSerialNumbers recorta espacios y rechaza vacíos y repetidos dentro de la petición.
func normalizeSerialNumbers(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		sn := strings.TrimSpace(raw)
		if sn == "" {
			return nil, fmt.Errorf("%w: número de serie vacío", domain.ErrInvalidInput)
		}
		if _, dup := seen[sn]; dup {
			return nil, fmt.Errorf("%w: número de serie %s repetido en la entrega", domain.ErrInvalidInput, sn)
		}
		seen[sn] = struct{}{}
		out = append(out, sn)
	}
	return out, nil
}
