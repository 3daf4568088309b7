// internal/repository/postgres/batch_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

type batchRepository struct {
	db *DB
}

func NewBatchRepository(db *DB) repository.BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) GetBatches(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
	query := `
		SELECT id, medicine_id, batch_number, quantity, expiry_date, cost_price, created_at, updated_at
		FROM batches
		WHERE medicine_id = $1
	`
	if onlyAvailable {
		query += " AND quantity > 0"
	}
	query += " ORDER BY expiry_date ASC, id ASC"

	var batches []domain.Batch
	if err := r.db.SelectContext(ctx, &batches, query, medicineID); err != nil {
		return nil, fmt.Errorf("failed to get batches for medicine %d: %w", medicineID, err)
	}

	return batches, nil
}

func (r *batchRepository) ListActive(ctx context.Context) ([]domain.BatchExpiry, error) {
	query := `
		SELECT b.id, b.medicine_id, b.batch_number, b.quantity, b.expiry_date,
		       b.cost_price, b.created_at, b.updated_at,
		       m.name AS medicine_name
		FROM batches b
		JOIN medicines m ON m.id = b.medicine_id
		WHERE b.quantity > 0
		ORDER BY b.expiry_date ASC, b.id ASC
	`

	var batches []domain.BatchExpiry
	if err := r.db.SelectContext(ctx, &batches, query); err != nil {
		return nil, fmt.Errorf("failed to list active batches: %w", err)
	}

	return batches, nil
}

func (r *batchRepository) InsertBatch(ctx context.Context, batch *domain.Batch) error {
	query := `
		INSERT INTO batches (medicine_id, batch_number, quantity, expiry_date, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		batch.MedicineID,
		batch.BatchNumber,
		batch.Quantity,
		batch.ExpiryDate,
		batch.CostPrice,
	).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	return nil
}

func (r *batchRepository) ApplyPlan(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
	if len(plan.Entries) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		// Optimistic re-check: the decrement only lands if the batch still
		// holds at least the planned quantity.
		query := `
			UPDATE batches
			SET quantity = quantity - $1, updated_at = NOW()
			WHERE id = $2 AND quantity >= $1
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare batch update: %w", err)
		}
		defer stmt.Close()

		for _, entry := range plan.Entries {
			res, err := stmt.ExecContext(ctx, entry.Taken, entry.BatchID)
			if err != nil {
				return fmt.Errorf("failed to decrement batch %d: %w", entry.BatchID, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read rows affected for batch %d: %w", entry.BatchID, err)
			}
			if affected != 1 {
				return fmt.Errorf("batch %d: %w", entry.BatchID, domain.ErrStaleBatch)
			}
		}

		if sale != nil {
			saleDate := sale.SaleDate
			if saleDate.IsZero() {
				saleDate = time.Now()
			}
			insert := `
				INSERT INTO sales_records (medicine_id, quantity, unit_price, sale_date)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`
			if err := tx.QueryRowContext(ctx, insert,
				sale.MedicineID, sale.Quantity, sale.UnitPrice, saleDate,
			).Scan(&sale.ID); err != nil {
				return fmt.Errorf("failed to insert sales record: %w", err)
			}
		}

		return nil
	})
}
