package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmadash/backend-go/internal/domain"
)

// Function-backed fakes for the repository interfaces. Unset functions
// return zero values so each test only wires what it needs.

type fakeMedicineRepo struct {
	getMedicine     func(ctx context.Context, id int64) (*domain.Medicine, error)
	listMedicines   func(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error)
	listAll         func(ctx context.Context) ([]domain.Medicine, error)
	getCurrentStock func(ctx context.Context, medicineID int64) (int, error)
	getStockLevels  func(ctx context.Context) (map[int64]int, error)
	getLowStock     func(ctx context.Context, threshold int) ([]domain.LowStockItem, error)
}

func (f *fakeMedicineRepo) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	if f.getMedicine == nil {
		return nil, domain.ErrNotFound
	}
	return f.getMedicine(ctx, id)
}

func (f *fakeMedicineRepo) ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error) {
	if f.listMedicines == nil {
		return nil, nil
	}
	return f.listMedicines(ctx, search, limit, offset)
}

func (f *fakeMedicineRepo) ListAll(ctx context.Context) ([]domain.Medicine, error) {
	if f.listAll == nil {
		return nil, nil
	}
	return f.listAll(ctx)
}

func (f *fakeMedicineRepo) GetCurrentStock(ctx context.Context, medicineID int64) (int, error) {
	if f.getCurrentStock == nil {
		return 0, nil
	}
	return f.getCurrentStock(ctx, medicineID)
}

func (f *fakeMedicineRepo) GetStockLevels(ctx context.Context) (map[int64]int, error) {
	if f.getStockLevels == nil {
		return map[int64]int{}, nil
	}
	return f.getStockLevels(ctx)
}

func (f *fakeMedicineRepo) GetLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	if f.getLowStock == nil {
		return nil, nil
	}
	return f.getLowStock(ctx, threshold)
}

type fakeBatchRepo struct {
	getBatches  func(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error)
	listActive  func(ctx context.Context) ([]domain.BatchExpiry, error)
	insertBatch func(ctx context.Context, batch *domain.Batch) error
	applyPlan   func(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error
}

func (f *fakeBatchRepo) GetBatches(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
	if f.getBatches == nil {
		return nil, nil
	}
	return f.getBatches(ctx, medicineID, onlyAvailable)
}

func (f *fakeBatchRepo) ListActive(ctx context.Context) ([]domain.BatchExpiry, error) {
	if f.listActive == nil {
		return nil, nil
	}
	return f.listActive(ctx)
}

func (f *fakeBatchRepo) InsertBatch(ctx context.Context, batch *domain.Batch) error {
	if f.insertBatch == nil {
		return nil
	}
	return f.insertBatch(ctx, batch)
}

func (f *fakeBatchRepo) ApplyPlan(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
	if f.applyPlan == nil {
		return nil
	}
	return f.applyPlan(ctx, plan, sale)
}

type fakeSalesRepo struct {
	getSalesHistory func(ctx context.Context, medicineID int64, since time.Time) ([]domain.SalesRecord, error)
	insertSale      func(ctx context.Context, sale *domain.SalesRecord) error
}

func (f *fakeSalesRepo) GetSalesHistory(ctx context.Context, medicineID int64, since time.Time) ([]domain.SalesRecord, error) {
	if f.getSalesHistory == nil {
		return nil, nil
	}
	return f.getSalesHistory(ctx, medicineID, since)
}

func (f *fakeSalesRepo) InsertSale(ctx context.Context, sale *domain.SalesRecord) error {
	if f.insertSale == nil {
		return nil
	}
	return f.insertSale(ctx, sale)
}

type fakeReorderRepo struct {
	insert       func(ctx context.Context, req *domain.ReorderRequest) error
	get          func(ctx context.Context, id uuid.UUID) (*domain.ReorderRequest, error)
	list         func(ctx context.Context, status string, limit, offset int) ([]domain.ReorderRequest, int, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status, decidedBy string) error
}

func (f *fakeReorderRepo) Insert(ctx context.Context, req *domain.ReorderRequest) error {
	if f.insert == nil {
		return nil
	}
	return f.insert(ctx, req)
}

func (f *fakeReorderRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ReorderRequest, error) {
	if f.get == nil {
		return nil, domain.ErrNotFound
	}
	return f.get(ctx, id)
}

func (f *fakeReorderRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.ReorderRequest, int, error) {
	if f.list == nil {
		return nil, 0, nil
	}
	return f.list(ctx, status, limit, offset)
}

func (f *fakeReorderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status, decidedBy string) error {
	if f.updateStatus == nil {
		return nil
	}
	return f.updateStatus(ctx, id, status, decidedBy)
}
