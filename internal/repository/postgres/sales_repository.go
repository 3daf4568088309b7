// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) GetSalesHistory(ctx context.Context, medicineID int64, since time.Time) ([]domain.SalesRecord, error) {
	query := `
		SELECT id, medicine_id, quantity, unit_price, sale_date
		FROM sales_records
		WHERE medicine_id = $1 AND sale_date >= $2
		ORDER BY sale_date ASC, id ASC
	`

	var records []domain.SalesRecord
	if err := r.db.SelectContext(ctx, &records, query, medicineID, since); err != nil {
		return nil, fmt.Errorf("failed to get sales history for medicine %d: %w", medicineID, err)
	}

	return records, nil
}

func (r *salesRepository) InsertSale(ctx context.Context, sale *domain.SalesRecord) error {
	saleDate := sale.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	query := `
		INSERT INTO sales_records (medicine_id, quantity, unit_price, sale_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.db.QueryRowxContext(ctx, query,
		sale.MedicineID, sale.Quantity, sale.UnitPrice, saleDate,
	).Scan(&sale.ID); err != nil {
		return fmt.Errorf("failed to insert sales record: %w", err)
	}

	return nil
}
