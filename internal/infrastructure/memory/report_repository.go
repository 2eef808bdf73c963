package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type reportRepo struct{ acc access }

var _ repository.ReportRepository = (*reportRepo)(nil)

// stockGroupedBy cuenta seriales IN_STOCK agrupando por una columna del artículo.
// Los grupos sin stock aparecen con 0.
func (r *reportRepo) stockGroupedBy(key func(entity.Item) string) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	err := r.acc(func(d *dataset) error {
		for _, it := range d.items.all() {
			if _, ok := counts[key(it)]; !ok {
				counts[key(it)] = 0
			}
		}
		for _, s := range d.serials.all() {
			if _, ok := s.State.(entity.InStock); !ok {
				continue
			}
			if it, ok := d.items.get(s.ItemID); ok {
				counts[key(it)]++
			}
		}
		return nil
	})
	return sortedGroups(counts), err
}

func (r *reportRepo) StockByCategory(_ context.Context) ([]repository.GroupCount, error) {
	return r.stockGroupedBy(func(it entity.Item) string { return it.Category })
}

func (r *reportRepo) StockBySite(_ context.Context) ([]repository.GroupCount, error) {
	return r.stockGroupedBy(func(it entity.Item) string { return it.Site })
}

func (r *reportRepo) OrdersByStatus(_ context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	err := r.acc(func(d *dataset) error {
		for _, o := range d.orders.all() {
			counts[string(o.Status)]++
		}
		return nil
	})
	return sortedGroups(counts), err
}

func (r *reportRepo) ActiveAssignmentsByDepartment(_ context.Context) ([]repository.GroupCount, error) {
	counts := map[string]int{}
	err := r.acc(func(d *dataset) error {
		for _, a := range d.assignments.all() {
			if !a.Active() {
				continue
			}
			dept := ""
			if u, ok := d.users.get(a.AssigneeUserID); ok {
				dept = u.Department
			}
			counts[dept]++
		}
		return nil
	})
	return sortedGroups(counts), err
}

func (r *reportRepo) OrdersInStatus(_ context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.acc(func(d *dataset) error {
		for _, o := range d.orders.all() {
			if o.Status == status {
				out = append(out, &o)
			}
		}
		return nil
	})
	// fecha prevista asc, sin fecha al final
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ExpectedDeliveryAt, out[j].ExpectedDeliveryAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	return out, err
}

func (r *reportRepo) WarrantiesEndingBefore(_ context.Context, before time.Time) ([]repository.WarrantyRow, error) {
	var out []repository.WarrantyRow
	err := r.acc(func(d *dataset) error {
		for _, s := range d.serials.all() {
			if s.WarrantyEnd == nil || !s.WarrantyEnd.Before(before) {
				continue
			}
			if _, retired := s.State.(entity.Retired); retired {
				continue
			}
			out = append(out, repository.WarrantyRow{
				SerialID:     s.ID,
				SerialNumber: s.SerialNumber,
				WarrantyEnd:  *s.WarrantyEnd,
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].WarrantyEnd.Equal(out[j].WarrantyEnd) {
			return out[i].WarrantyEnd.Before(out[j].WarrantyEnd)
		}
		return out[i].SerialNumber < out[j].SerialNumber
	})
	return out, err
}

func (r *reportRepo) RecentAssignments(_ context.Context, limit int) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	err := r.acc(func(d *dataset) error {
		for _, a := range d.assignments.all() {
			out = append(out, &a)
		}
		return nil
	})
	sortAssignmentsDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *reportRepo) InStockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.acc(func(d *dataset) error {
		for _, s := range d.serials.all() {
			if _, ok := s.State.(entity.InStock); ok && s.PurchasePrice != nil {
				total = total.Add(*s.PurchasePrice)
			}
		}
		return nil
	})
	return total, err
}

func sortedGroups(counts map[string]int) []repository.GroupCount {
	out := make([]repository.GroupCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, repository.GroupCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
