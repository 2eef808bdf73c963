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

var _ repository.FileRepository = (*FileRepo)(nil)

// FileRepo adjuntos guardados como bytea.
type FileRepo struct {
	q Querier
}

// NewFileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFileRepository(q Querier) *FileRepo {
	return &FileRepo{q: q}
}

// Create persiste metadatos y contenido.
func (r *FileRepo) Create(ctx context.Context, f *entity.StoredFile) error {
	query := `
		INSERT INTO files (id, entity_type, entity_id, filename, mime, size, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, f.ID, f.EntityType, f.EntityID, f.Filename, f.Mime, f.Size, f.Content, f.CreatedAt)
	if err != nil {
		return wrapWriteErr("insert file", err)
	}
	return nil
}

// GetByID incluye el contenido.
func (r *FileRepo) GetByID(ctx context.Context, id string) (*entity.StoredFile, error) {
	if !validID(id) {
		return nil, nil
	}
	var f entity.StoredFile
	err := r.q.QueryRow(ctx, `
		SELECT id, entity_type, entity_id::text, filename, mime, size, content, created_at
		FROM files WHERE id = $1`, id).Scan(
		&f.ID, &f.EntityType, &f.EntityID, &f.Filename, &f.Mime, &f.Size, &f.Content, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}

// ListByEntity solo metadatos, más recientes primero.
func (r *FileRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.StoredFile, error) {
	var (
		conds []string
		args  []any
	)
	if entityType != "" {
		args = append(args, entityType)
		conds = append(conds, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if entityID != "" {
		if !validID(entityID) {
			return nil, nil
		}
		args = append(args, entityID)
		conds = append(conds, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	query := `SELECT id, entity_type, entity_id::text, filename, mime, size, created_at FROM files`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var list []*entity.StoredFile
	for rows.Next() {
		var f entity.StoredFile
		if err := rows.Scan(&f.ID, &f.EntityType, &f.EntityID, &f.Filename, &f.Mime, &f.Size, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete devuelve false si no existía.
func (r *FileRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete file: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
