package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

var (
	_ repository.SerialRepository = (*SerialRepo)(nil)
	_ repository.StockRepository  = (*StockRepo)(nil)
)

// SerialRepo unidades serializadas sobre PostgreSQL.
// El par (status, current_assignee_user_id) lo protege el CHECK serials_assignee_matches_status.
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

const serialColumns = `id, item_id, serial_number, COALESCE(delivery_id::text, ''), delivery_date,
	warranty_start, warranty_end, COALESCE(supplier_id::text, ''), purchase_price, status,
	current_assignee_user_id::text, created_at, updated_at`

func scanSerial(row pgx.Row) (*entity.Serial, error) {
	var (
		s        entity.Serial
		status   string
		assignee *string
	)
	err := row.Scan(&s.ID, &s.ItemID, &s.SerialNumber, &s.DeliveryID, &s.DeliveryDate,
		&s.WarrantyStart, &s.WarrantyEnd, &s.SupplierID, &s.PurchasePrice, &status,
		&assignee, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	state, err := entity.StateFromColumns(status, assignee)
	if err != nil {
		return nil, err
	}
	s.State = state
	return &s, nil
}

// Create persiste un serial. Número repetido devuelve ErrDuplicate.
func (r *SerialRepo) Create(ctx context.Context, s *entity.Serial) error {
	if s.State == nil {
		s.State = entity.InStock{}
	}
	status, assignee := entity.StateColumns(s.State)
	query := `
		INSERT INTO serials (id, item_id, serial_number, delivery_id, delivery_date, warranty_start,
			warranty_end, supplier_id, purchase_price, status, current_assignee_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ItemID, s.SerialNumber, nullIfEmpty(s.DeliveryID), s.DeliveryDate, s.WarrantyStart,
		s.WarrantyEnd, nullIfEmpty(s.SupplierID), s.PurchasePrice, string(status), assignee,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert serial", err)
	}
	return nil
}

func (r *SerialRepo) get(ctx context.Context, id, suffix string) (*entity.Serial, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSerial(r.q.QueryRow(ctx, `SELECT `+serialColumns+` FROM serials WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial: %w", err)
	}
	return s, nil
}

// GetByID obtiene un serial por ID.
func (r *SerialRepo) GetByID(ctx context.Context, id string) (*entity.Serial, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate SELECT ... FOR UPDATE: serializa las asignaciones concurrentes del mismo serial.
func (r *SerialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Serial, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateState escribe estado y asignatario en la misma sentencia.
func (r *SerialRepo) UpdateState(ctx context.Context, id string, state entity.SerialState) error {
	status, assignee := entity.StateColumns(state)
	tag, err := r.q.Exec(ctx, `
		UPDATE serials SET status = $2, current_assignee_user_id = $3, updated_at = now()
		WHERE id = $1`, id, string(status), assignee)
	if err != nil {
		return wrapWriteErr("update serial state", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update serial state: %w", notFound("serial", id))
	}
	return nil
}

// List seriales filtrados por número de serie.
func (r *SerialRepo) List(ctx context.Context, f repository.SerialFilter) ([]*entity.Serial, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.ItemID != "" {
		if !validID(f.ItemID) {
			return nil, nil
		}
		args = append(args, f.ItemID)
		conds = append(conds, fmt.Sprintf("item_id = $%d", len(args)))
	}
	if f.Assigned != nil {
		if *f.Assigned {
			conds = append(conds, "current_assignee_user_id IS NOT NULL")
		} else {
			conds = append(conds, "current_assignee_user_id IS NULL")
		}
	}

	query := `SELECT ` + serialColumns + ` FROM serials`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY delivery_date DESC NULLS LAST, serial_number"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list serials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Serial
	for rows.Next() {
		s, err := scanSerial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// StockRepo proyección de stock: cuenta seriales IN_STOCK en cada llamada.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// CountInStock itemID → seriales IN_STOCK. Los artículos sin stock no aparecen.
func (r *StockRepo) CountInStock(ctx context.Context, itemIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(itemIDs))
	ids := validIDs(itemIDs)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT item_id::text, COUNT(*)
		FROM serials
		WHERE status = 'in_stock' AND item_id = ANY($1::uuid[])
		GROUP BY item_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("count in stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}
