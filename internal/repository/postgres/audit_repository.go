// internal/repository/postgres/audit_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

type auditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (actor, entity_type, entity_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	if err := r.db.QueryRowxContext(ctx, query,
		entry.Actor, entry.EntityType, entry.EntityID, entry.Action, entry.Detail,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}
