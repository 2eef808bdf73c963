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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, COALESCE(category, ''), COALESCE(internal_ref, ''),
	COALESCE(default_supplier_id::text, ''), default_unit_price, COALESCE(site, ''),
	low_stock_threshold, COALESCE(notes, ''), created_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.InternalRef, &it.DefaultSupplierID,
		&it.DefaultUnitPrice, &it.Site, &it.LowStockThreshold, &it.Notes, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un artículo. Un proveedor por defecto inexistente devuelve ErrNotFound.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category, internal_ref, default_supplier_id, default_unit_price,
			site, low_stock_threshold, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, nullIfEmpty(it.Category), nullIfEmpty(it.InternalRef),
		nullIfEmpty(it.DefaultSupplierID), it.DefaultUnitPrice, nullIfEmpty(it.Site),
		it.LowStockThreshold, nullIfEmpty(it.Notes), it.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert item", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if !validID(id) {
		return nil, nil
	}
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// List artículos filtrados, ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.SupplierID != "" {
		if !validID(f.SupplierID) {
			return nil, nil
		}
		add("default_supplier_id = $%d", f.SupplierID)
	}
	if f.Site != "" {
		add("site = $%d", f.Site)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(name ILIKE $%[1]d OR internal_ref ILIKE $%[1]d)", "%"+escapeLike(s)+"%")
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY lower(name), created_at"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// escapeLike escapa los comodines de LIKE en texto de búsqueda.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
