package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type orderRepo struct{ acc access }

var _ repository.OrderRepository = (*orderRepo)(nil)

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.acc(func(d *dataset) error {
		if d.orders.has(o.ID) {
			return domain.ErrDuplicate
		}
		if !d.suppliers.has(o.SupplierID) {
			return domain.ErrNotFound
		}
		d.orders.put(o.ID, *o)
		return nil
	})
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.acc(func(d *dataset) error {
		if v, ok := d.orders.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la unidad de trabajo ya es exclusiva.
func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.acc(func(d *dataset) error {
		cur, ok := d.orders.get(o.ID)
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = o.Status
		cur.OrderedAt = o.OrderedAt
		cur.ExpectedDeliveryAt = o.ExpectedDeliveryAt
		cur.UpdatedAt = o.UpdatedAt
		d.orders.put(o.ID, cur)
		return nil
	})
}

func (r *orderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Order
	err := r.acc(func(d *dataset) error {
		for _, v := range d.orders.all() {
			if f.Status != "" && v.Status != f.Status {
				continue
			}
			if f.SupplierID != "" && v.SupplierID != f.SupplierID {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(v.InternalRef), search) {
				continue
			}
			out = append(out, &v)
		}
		return nil
	})
	// ordered_at desc (nulos al final), luego más recientes primero
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].OrderedAt, out[j].OrderedAt
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *orderRepo) AddLine(_ context.Context, l *entity.OrderLine) error {
	return r.acc(func(d *dataset) error {
		if !d.orders.has(l.OrderID) || !d.items.has(l.ItemID) {
			return domain.ErrNotFound
		}
		d.lines.put(l.ID, *l)
		return nil
	})
}

func (r *orderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	err := r.acc(func(d *dataset) error {
		for _, v := range d.lines.all() {
			if v.OrderID == orderID {
				out = append(out, &v)
			}
		}
		return nil
	})
	return out, err
}

type deliveryRepo struct{ acc access }

var _ repository.DeliveryRepository = (*deliveryRepo)(nil)

func (r *deliveryRepo) Create(_ context.Context, dl *entity.Delivery) error {
	return r.acc(func(d *dataset) error {
		if !d.orders.has(dl.OrderID) {
			return domain.ErrNotFound
		}
		d.deliveries.put(dl.ID, *dl)
		return nil
	})
}

func (r *deliveryRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	err := r.acc(func(d *dataset) error {
		for _, v := range d.deliveries.all() {
			if v.OrderID == orderID {
				out = append(out, &v)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveredAt.Before(out[j].DeliveredAt) })
	return out, err
}
