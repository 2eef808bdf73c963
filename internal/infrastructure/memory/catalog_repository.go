package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type supplierRepo struct{ acc access }

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.acc(func(d *dataset) error {
		if d.suppliers.has(s.ID) {
			return domain.ErrDuplicate
		}
		d.suppliers.put(s.ID, *s)
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.acc(func(d *dataset) error {
		if v, ok := d.suppliers.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.acc(func(d *dataset) error {
		for _, v := range d.suppliers.all() {
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, err
}

type itemRepo struct{ acc access }

var _ repository.ItemRepository = (*itemRepo)(nil)

func (r *itemRepo) Create(_ context.Context, it *entity.Item) error {
	return r.acc(func(d *dataset) error {
		if d.items.has(it.ID) {
			return domain.ErrDuplicate
		}
		d.items.put(it.ID, *it)
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.acc(func(d *dataset) error {
		if v, ok := d.items.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Item
	err := r.acc(func(d *dataset) error {
		for _, v := range d.items.all() {
			if f.Category != "" && v.Category != f.Category {
				continue
			}
			if f.SupplierID != "" && v.DefaultSupplierID != f.SupplierID {
				continue
			}
			if f.Site != "" && v.Site != f.Site {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(v.Name), search) &&
				!strings.Contains(strings.ToLower(v.InternalRef), search) {
				continue
			}
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, err
}

type userRepo struct{ acc access }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.acc(func(d *dataset) error {
		if v, ok := d.users.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.acc(func(d *dataset) error {
		for _, v := range d.users.all() {
			if strings.EqualFold(v.Email, email) {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.acc(func(d *dataset) error {
		for _, v := range d.users.all() {
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out, err
}
