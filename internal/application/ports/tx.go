package ports

import (
	"context"

	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma unidad de trabajo
// (el pool fuera de transacción, o una tx dentro de TxRunner.Run).
type Repositories struct {
	Suppliers   repository.SupplierRepository
	Items       repository.ItemRepository
	Orders      repository.OrderRepository
	Deliveries  repository.DeliveryRepository
	Serials     repository.SerialRepository
	Stock       repository.StockRepository
	Assignments repository.AssignmentRepository
	Users       repository.UserRepository
	Activity    repository.ActivityLogRepository
	Files       repository.FileRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Ninguna escritura
// de fn es visible para otras operaciones antes del Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
