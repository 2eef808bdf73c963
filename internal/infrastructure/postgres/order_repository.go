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
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepo)(nil)
)

// OrderRepo órdenes de compra y sus líneas sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, supplier_id, COALESCE(internal_ref, ''), status, ordered_at, expected_delivery_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	err := row.Scan(&o.ID, &o.SupplierID, &o.InternalRef, &status, &o.OrderedAt, &o.ExpectedDeliveryAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, supplier_id, internal_ref, status, ordered_at, expected_delivery_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.SupplierID, nullIfEmpty(o.InternalRef), string(o.Status),
		o.OrderedAt, o.ExpectedDeliveryAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert order", err)
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, id, suffix string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateStatus persiste el estado y las fechas asociadas.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, ordered_at = $3, expected_delivery_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, o.ID, string(o.Status), o.OrderedAt, o.ExpectedDeliveryAt, o.UpdatedAt)
	if err != nil {
		return wrapWriteErr("update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order status: %w", notFound("order", o.ID))
	}
	return nil
}

// List órdenes filtradas: ordered_at desc (nulos al final), luego más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.SupplierID != "" {
		if !validID(f.SupplierID) {
			return nil, nil
		}
		add("supplier_id = $%d", f.SupplierID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("internal_ref ILIKE $%d", "%"+escapeLike(s)+"%")
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ordered_at DESC NULLS LAST, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// AddLine persiste una línea. Orden o artículo inexistentes devuelven ErrNotFound.
func (r *OrderRepo) AddLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, item_id, qty, unit_price, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.ItemID, l.Qty, l.UnitPrice, l.TaxRate)
	if err != nil {
		return wrapWriteErr("insert order line", err)
	}
	return nil
}

// ListLines líneas de la orden en orden de alta.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	if !validID(orderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, item_id, qty, unit_price, tax_rate
		FROM order_lines WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Qty, &l.UnitPrice, &l.TaxRate); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeliveryRepo recepciones sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste una recepción.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, delivery_note_ref, delivered_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, d.ID, d.OrderID, nullIfEmpty(d.DeliveryNoteRef), d.DeliveredAt, d.CreatedAt)
	if err != nil {
		return wrapWriteErr("insert delivery", err)
	}
	return nil
}

// ListByOrder recepciones de la orden por fecha.
func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error) {
	if !validID(orderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, COALESCE(delivery_note_ref, ''), delivered_at, created_at
		FROM deliveries WHERE order_id = $1 ORDER BY delivered_at, created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DeliveryNoteRef, &d.DeliveredAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
