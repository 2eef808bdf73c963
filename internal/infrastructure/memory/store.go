// Package memory implementa los puertos de repositorio en memoria. Sirve para
// tests y para arrancar el servicio sin base de datos (STORE_DRIVER=memory).
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

var errTxClosed = errors.New("memory: transacción ya finalizada")

type dataset struct {
	users       *table[entity.User]
	suppliers   *table[entity.Supplier]
	items       *table[entity.Item]
	orders      *table[entity.Order]
	lines       *table[entity.OrderLine]
	deliveries  *table[entity.Delivery]
	serials     *table[entity.Serial]
	assignments *table[entity.Assignment]
	activity    *table[entity.ActivityLog]
	files       *table[entity.StoredFile]
}

func newDataset() *dataset {
	return &dataset{
		users:       newTable[entity.User](),
		suppliers:   newTable[entity.Supplier](),
		items:       newTable[entity.Item](),
		orders:      newTable[entity.Order](),
		lines:       newTable[entity.OrderLine](),
		deliveries:  newTable[entity.Delivery](),
		serials:     newTable[entity.Serial](),
		assignments: newTable[entity.Assignment](),
		activity:    newTable[entity.ActivityLog](),
		files:       newTable[entity.StoredFile](),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:       d.users.clone(),
		suppliers:   d.suppliers.clone(),
		items:       d.items.clone(),
		orders:      d.orders.clone(),
		lines:       d.lines.clone(),
		deliveries:  d.deliveries.clone(),
		serials:     d.serials.clone(),
		assignments: d.assignments.clone(),
		activity:    d.activity.clone(),
		files:       d.files.clone(),
	}
}

// access ejecuta fn con acceso exclusivo al dataset.
type access func(fn func(d *dataset) error) error

// Store almacén en memoria. Las unidades de trabajo (Run) se serializan con un
// único mutex y trabajan sobre los datos vivos; si fn falla se restaura la copia
// tomada al empezar, así que ninguna escritura parcial sobrevive.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

var _ ports.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) locked(fn func(d *dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Repositories repositorios fuera de transacción (cada llamada toma el lock).
// No usarlos dentro de fn de Run: el lock ya está tomado.
func (s *Store) Repositories() ports.Repositories {
	return newRepositories(s.locked)
}

// Reports repositorio de consultas para dashboard e informes.
func (s *Store) Reports() repository.ReportRepository {
	return &reportRepo{acc: s.locked}
}

// Run implementa ports.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	snapshot := s.data.clone()
	closed := false
	committed := false
	defer func() {
		closed = true
		if !committed {
			s.data = snapshot
		}
		s.mu.Unlock()
	}()

	live := s.data
	txAccess := func(f func(d *dataset) error) error {
		if closed {
			return errTxClosed
		}
		return f(live)
	}
	if err := fn(newRepositories(txAccess)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	committed = true
	return nil
}

func newRepositories(acc access) ports.Repositories {
	return ports.Repositories{
		Suppliers:   &supplierRepo{acc: acc},
		Items:       &itemRepo{acc: acc},
		Orders:      &orderRepo{acc: acc},
		Deliveries:  &deliveryRepo{acc: acc},
		Serials:     &serialRepo{acc: acc},
		Stock:       &stockRepo{acc: acc},
		Assignments: &assignmentRepo{acc: acc},
		Users:       &userRepo{acc: acc},
		Activity:    &activityRepo{acc: acc},
		Files:       &fileRepo{acc: acc},
	}
}

// ── Datos semilla (tests y arranque en memoria) ──────────────────────────────

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	_ = s.locked(func(d *dataset) error { d.users.put(u.ID, u); return nil })
}

// PutSupplier inserta o reemplaza un proveedor.
func (s *Store) PutSupplier(v entity.Supplier) {
	_ = s.locked(func(d *dataset) error { d.suppliers.put(v.ID, v); return nil })
}

// PutItem inserta o reemplaza un artículo.
func (s *Store) PutItem(v entity.Item) {
	_ = s.locked(func(d *dataset) error { d.items.put(v.ID, v); return nil })
}

// PutSerial inserta o reemplaza un serial (sin comprobar unicidad del número).
func (s *Store) PutSerial(v entity.Serial) {
	_ = s.locked(func(d *dataset) error { d.serials.put(v.ID, v); return nil })
}

// DeleteSerial borra un serial (simula un borrado externo).
func (s *Store) DeleteSerial(id string) {
	_ = s.locked(func(d *dataset) error { d.serials.del(id); return nil })
}

// ActivityLog copia del log de actividad en orden de inserción.
func (s *Store) ActivityLog() []entity.ActivityLog {
	var out []entity.ActivityLog
	_ = s.locked(func(d *dataset) error { out = d.activity.all(); return nil })
	return out
}
