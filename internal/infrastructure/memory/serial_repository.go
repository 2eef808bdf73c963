package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type serialRepo struct{ acc access }

var _ repository.SerialRepository = (*serialRepo)(nil)

func (r *serialRepo) Create(_ context.Context, s *entity.Serial) error {
	return r.acc(func(d *dataset) error {
		if d.serials.has(s.ID) {
			return domain.ErrDuplicate
		}
		for _, v := range d.serials.all() {
			if v.SerialNumber == s.SerialNumber {
				return domain.ErrDuplicate
			}
		}
		if !d.items.has(s.ItemID) {
			return domain.ErrNotFound
		}
		d.serials.put(s.ID, *s)
		return nil
	})
}

func (r *serialRepo) GetByID(_ context.Context, id string) (*entity.Serial, error) {
	var out *entity.Serial
	err := r.acc(func(d *dataset) error {
		if v, ok := d.serials.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *serialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Serial, error) {
	return r.GetByID(ctx, id)
}

func (r *serialRepo) UpdateState(_ context.Context, id string, state entity.SerialState) error {
	if state == nil {
		return domain.ErrInvalidInput
	}
	return r.acc(func(d *dataset) error {
		cur, ok := d.serials.get(id)
		if !ok {
			return domain.ErrNotFound
		}
		cur.State = state
		d.serials.put(id, cur)
		return nil
	})
}

func (r *serialRepo) List(_ context.Context, f repository.SerialFilter) ([]*entity.Serial, error) {
	var out []*entity.Serial
	err := r.acc(func(d *dataset) error {
		for _, v := range d.serials.all() {
			if f.Status != "" && v.State.Status() != f.Status {
				continue
			}
			if f.ItemID != "" && v.ItemID != f.ItemID {
				continue
			}
			if f.Assigned != nil && (v.CurrentAssignee() != "") != *f.Assigned {
				continue
			}
			out = append(out, &v)
		}
		return nil
	})
	// delivery_date DESC NULLS LAST, serial_number
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DeliveryDate, out[j].DeliveryDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case (a == nil) != (b == nil):
			return a != nil
		}
		return out[i].SerialNumber < out[j].SerialNumber
	})
	return out, err
}

type stockRepo struct{ acc access }

var _ repository.StockRepository = (*stockRepo)(nil)

func (r *stockRepo) CountInStock(_ context.Context, itemIDs []string) (map[string]int, error) {
	wanted := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]int, len(itemIDs))
	err := r.acc(func(d *dataset) error {
		for _, v := range d.serials.all() {
			if _, ok := wanted[v.ItemID]; !ok {
				continue
			}
			if _, in := v.State.(entity.InStock); in {
				out[v.ItemID]++
			}
		}
		return nil
	})
	return out, err
}
