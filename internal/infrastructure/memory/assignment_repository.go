package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type assignmentRepo struct{ acc access }

var _ repository.AssignmentRepository = (*assignmentRepo)(nil)

func (r *assignmentRepo) Create(_ context.Context, a *entity.Assignment) error {
	return r.acc(func(d *dataset) error {
		if d.assignments.has(a.ID) {
			return domain.ErrDuplicate
		}
		// como el índice único parcial de Postgres: una sola asignación activa por serial
		for _, v := range d.assignments.all() {
			if v.SerialID == a.SerialID && v.Active() {
				return domain.ErrDuplicate
			}
		}
		d.assignments.put(a.ID, *a)
		return nil
	})
}

func (r *assignmentRepo) GetByID(_ context.Context, id string) (*entity.Assignment, error) {
	var out *entity.Assignment
	err := r.acc(func(d *dataset) error {
		if v, ok := d.assignments.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *assignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.GetByID(ctx, id)
}

func (r *assignmentRepo) Close(_ context.Context, id string, endDate time.Time) error {
	return r.acc(func(d *dataset) error {
		cur, ok := d.assignments.get(id)
		if !ok {
			return domain.ErrNotFound
		}
		end := endDate
		cur.EndDate = &end
		d.assignments.put(id, cur)
		return nil
	})
}

func (r *assignmentRepo) SetDocument(_ context.Context, id, fileID string) error {
	return r.acc(func(d *dataset) error {
		cur, ok := d.assignments.get(id)
		if !ok {
			return domain.ErrNotFound
		}
		cur.DocumentFileID = fileID
		d.assignments.put(id, cur)
		return nil
	})
}

func (r *assignmentRepo) List(_ context.Context, f repository.AssignmentFilter) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	err := r.acc(func(d *dataset) error {
		for _, v := range d.assignments.all() {
			if f.UserID != "" && v.AssigneeUserID != f.UserID {
				continue
			}
			if f.ActiveOnly && !v.Active() {
				continue
			}
			out = append(out, &v)
		}
		return nil
	})
	sortAssignmentsDesc(out)
	return out, err
}

// sortAssignmentsDesc start_date desc, luego created_at desc.
func sortAssignmentsDesc(list []*entity.Assignment) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].StartDate.After(list[j].StartDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
