// internal/repository/postgres/reorder_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

type reorderRepository struct {
	db *DB
}

func NewReorderRepository(db *DB) repository.ReorderRepository {
	return &reorderRepository{db: db}
}

func (r *reorderRepository) Insert(ctx context.Context, req *domain.ReorderRequest) error {
	query := `
		INSERT INTO reorder_requests (id, medicine_id, quantity, status, note, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	if _, err := r.db.ExecContext(ctx, query,
		req.ID, req.MedicineID, req.Quantity, req.Status, req.Note, req.RequestedBy,
	); err != nil {
		return fmt.Errorf("failed to insert reorder request: %w", err)
	}

	return nil
}

func (r *reorderRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ReorderRequest, error) {
	query := `
		SELECT r.id, r.medicine_id, m.name AS medicine_name, r.quantity, r.status,
		       r.note, r.requested_by, r.decided_by, r.created_at, r.updated_at, r.decided_at
		FROM reorder_requests r
		JOIN medicines m ON m.id = r.medicine_id
		WHERE r.id = $1
	`

	var req domain.ReorderRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reorder request %s: %w", id, err)
	}

	return &req, nil
}

func (r *reorderRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.ReorderRequest, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM reorder_requests r WHERE 1=1`
	query := `
		SELECT r.id, r.medicine_id, m.name AS medicine_name, r.quantity, r.status,
		       r.note, r.requested_by, r.decided_by, r.created_at, r.updated_at, r.decided_at
		FROM reorder_requests r
		JOIN medicines m ON m.id = r.medicine_id
		WHERE 1=1
	`

	var args []interface{}
	var conditions []string
	argCounter := 1

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argCounter))
		args = append(args, status)
		argCounter++
	}

	if len(conditions) > 0 {
		whereClause := " AND " + strings.Join(conditions, " AND ")
		query += whereClause
		countQuery += whereClause
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count reorder requests: %w", err)
	}

	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, limit, offset)

	var requests []domain.ReorderRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list reorder requests: %w", err)
	}

	return requests, total, nil
}

func (r *reorderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, decidedBy string) error {
	query := `
		UPDATE reorder_requests
		SET status = $1, decided_by = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, status, decidedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update reorder request %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for reorder %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
