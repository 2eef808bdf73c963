package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

type activityRepo struct{ acc access }

var _ repository.ActivityLogRepository = (*activityRepo)(nil)

func (r *activityRepo) Append(_ context.Context, e *entity.ActivityLog) error {
	return r.acc(func(d *dataset) error {
		d.activity.put(e.ID, *e)
		return nil
	})
}

type fileRepo struct{ acc access }

var _ repository.FileRepository = (*fileRepo)(nil)

func (r *fileRepo) Create(_ context.Context, f *entity.StoredFile) error {
	return r.acc(func(d *dataset) error {
		if d.files.has(f.ID) {
			return domain.ErrDuplicate
		}
		v := *f
		v.Content = append([]byte(nil), f.Content...)
		d.files.put(f.ID, v)
		return nil
	})
}

func (r *fileRepo) GetByID(_ context.Context, id string) (*entity.StoredFile, error) {
	var out *entity.StoredFile
	err := r.acc(func(d *dataset) error {
		if v, ok := d.files.get(id); ok {
			v.Content = append([]byte(nil), v.Content...)
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *fileRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.StoredFile, error) {
	var out []*entity.StoredFile
	err := r.acc(func(d *dataset) error {
		all := d.files.all()
		// más recientes primero; a igual fecha, el último insertado primero
		for i := len(all) - 1; i >= 0; i-- {
			v := all[i]
			if entityType != "" && v.EntityType != entityType {
				continue
			}
			if entityID != "" && v.EntityID != entityID {
				continue
			}
			v.Content = nil
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r *fileRepo) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.acc(func(d *dataset) error {
		deleted = d.files.del(id)
		return nil
	})
	return deleted, err
}
