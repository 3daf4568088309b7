// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadash/backend-go/internal/domain"
)

// MedicineRepository reads the medicine catalog and derived stock levels.
type MedicineRepository interface {
	GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error)
	ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error)
	ListAll(ctx context.Context) ([]domain.Medicine, error)
	// GetCurrentStock sums the remaining quantity across a medicine's batches.
	GetCurrentStock(ctx context.Context, medicineID int64) (int, error)
	GetStockLevels(ctx context.Context) (map[int64]int, error)
	GetLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error)
}

// BatchRepository serves inventory batches and applies allocation plans.
type BatchRepository interface {
	GetBatches(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error)
	ListActive(ctx context.Context) ([]domain.BatchExpiry, error)
	InsertBatch(ctx context.Context, batch *domain.Batch) error
	// ApplyPlan atomically decrements batch quantities per the plan and,
	// when sale is non-nil, appends the sale record in the same
	// transaction. Each decrement re-verifies quantity >= taken so two
	// concurrent sales cannot over-allocate; a failed check returns
	// domain.ErrStaleBatch and rolls everything back.
	ApplyPlan(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error
}

// SalesRepository reads the append-only sales history.
type SalesRepository interface {
	// GetSalesHistory returns sales for a medicine since the given time,
	// ordered by sale date ascending.
	GetSalesHistory(ctx context.Context, medicineID int64, since time.Time) ([]domain.SalesRecord, error)
	InsertSale(ctx context.Context, sale *domain.SalesRecord) error
}

// ReorderRepository persists the low-stock request workflow.
type ReorderRepository interface {
	Insert(ctx context.Context, req *domain.ReorderRequest) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ReorderRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.ReorderRequest, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, decidedBy string) error
}

// AuditRepository appends audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
