package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo préstamos sobre PostgreSQL.
// El índice parcial assignments_one_active_per_serial impide dos préstamos abiertos del mismo serial.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, COALESCE(serial_id::text, ''), assignee_user_id, start_date, expected_return_date,
	end_date, COALESCE(document_file_id::text, ''), COALESCE(notes, ''), created_at`

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	err := row.Scan(&a.ID, &a.SerialID, &a.AssigneeUserID, &a.StartDate, &a.ExpectedReturnDate,
		&a.EndDate, &a.DocumentFileID, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAssignments(rows pgx.Rows) ([]*entity.Assignment, error) {
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Create persiste una asignación. Otra activa para el mismo serial devuelve ErrDuplicate.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (id, serial_id, assignee_user_id, start_date, expected_return_date,
			end_date, document_file_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.SerialID, a.AssigneeUserID, a.StartDate, a.ExpectedReturnDate, a.EndDate,
		nullIfEmpty(a.DocumentFileID), nullIfEmpty(a.Notes), a.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr("insert assignment", err)
	}
	return nil
}

func (r *AssignmentRepo) get(ctx context.Context, id, suffix string) (*entity.Assignment, error) {
	if !validID(id) {
		return nil, nil
	}
	a, err := scanAssignment(r.q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// GetByID obtiene una asignación por ID.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *AssignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// Close fija end_date.
func (r *AssignmentRepo) Close(ctx context.Context, id string, endDate time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE assignments SET end_date = $2 WHERE id = $1`, id, endDate)
	if err != nil {
		return wrapWriteErr("close assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("close assignment: %w", notFound("assignment", id))
	}
	return nil
}

// SetDocument enlaza el documento firmado.
func (r *AssignmentRepo) SetDocument(ctx context.Context, id, fileID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE assignments SET document_file_id = $2 WHERE id = $1`, id, fileID)
	if err != nil {
		return wrapWriteErr("set assignment document", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set assignment document: %w", notFound("assignment", id))
	}
	return nil
}

// List asignaciones filtradas: start_date desc, luego created_at desc.
func (r *AssignmentRepo) List(ctx context.Context, f repository.AssignmentFilter) ([]*entity.Assignment, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		if !validID(f.UserID) {
			return nil, nil
		}
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("assignee_user_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		conds = append(conds, "end_date IS NULL")
	}

	query := `SELECT ` + assignmentColumns + ` FROM assignments`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY start_date DESC, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return collectAssignments(rows)
}
