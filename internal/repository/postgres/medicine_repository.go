// internal/repository/postgres/medicine_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

type medicineRepository struct {
	db *DB
}

func NewMedicineRepository(db *DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	query := `
		SELECT id, name, generic_name, composition, manufacturer, price, created_at, updated_at
		FROM medicines
		WHERE id = $1
	`

	var medicine domain.Medicine
	if err := r.db.GetContext(ctx, &medicine, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medicine %d: %w", id, err)
	}

	return &medicine, nil
}

func (r *medicineRepository) ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, generic_name, composition, manufacturer, price, created_at, updated_at
		FROM medicines
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR generic_name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	var medicines []domain.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}

	return medicines, nil
}

func (r *medicineRepository) ListAll(ctx context.Context) ([]domain.Medicine, error) {
	query := `
		SELECT id, name, generic_name, composition, manufacturer, price, created_at, updated_at
		FROM medicines
		ORDER BY id
	`

	var medicines []domain.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query); err != nil {
		return nil, fmt.Errorf("failed to list all medicines: %w", err)
	}

	return medicines, nil
}

func (r *medicineRepository) GetCurrentStock(ctx context.Context, medicineID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM batches
		WHERE medicine_id = $1 AND quantity > 0
	`

	var stock int
	if err := r.db.GetContext(ctx, &stock, query, medicineID); err != nil {
		return 0, fmt.Errorf("failed to get current stock for medicine %d: %w", medicineID, err)
	}

	return stock, nil
}

func (r *medicineRepository) GetStockLevels(ctx context.Context) (map[int64]int, error) {
	query := `
		SELECT medicine_id, COALESCE(SUM(quantity), 0) AS stock
		FROM batches
		WHERE quantity > 0
		GROUP BY medicine_id
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	levels := make(map[int64]int)
	for rows.Next() {
		var medicineID int64
		var stock int
		if err := rows.Scan(&medicineID, &stock); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels[medicineID] = stock
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating stock levels: %w", err)
	}

	return levels, nil
}

func (r *medicineRepository) GetLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	query := `
		SELECT m.id AS medicine_id,
		       m.name AS medicine_name,
		       COALESCE(SUM(b.quantity), 0) AS current_stock
		FROM medicines m
		LEFT JOIN batches b ON b.medicine_id = m.id AND b.quantity > 0
		GROUP BY m.id, m.name
		HAVING COALESCE(SUM(b.quantity), 0) < $1
		ORDER BY current_stock ASC, m.name ASC
	`

	var items []domain.LowStockItem
	if err := r.db.SelectContext(ctx, &items, query, threshold); err != nil {
		return nil, fmt.Errorf("failed to list low stock medicines: %w", err)
	}
	for i := range items {
		items[i].Threshold = threshold
	}

	return items, nil
}
