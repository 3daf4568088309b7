package service

import (
	"context"
	"testing"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func expiryIn(days int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func newTestInventoryService(batches *fakeBatchRepo, medicines *fakeMedicineRepo) *InventoryService {
	s := NewInventoryService(batches, medicines, nil, 30)
	s.now = func() time.Time { return testNow }
	return s
}

func TestPlanAllocationValidation(t *testing.T) {
	s := newTestInventoryService(&fakeBatchRepo{}, &fakeMedicineRepo{})

	_, err := s.PlanAllocation(context.Background(), 0, 5)
	assert.ErrorIs(t, err, domain.ErrMissingMedicine)

	_, err = s.PlanAllocation(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = s.PlanAllocation(context.Background(), 1, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPlanAllocationUsesAvailableBatches(t *testing.T) {
	batches := &fakeBatchRepo{
		getBatches: func(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
			assert.True(t, onlyAvailable)
			return []domain.Batch{
				{ID: 1, Quantity: 10, ExpiryDate: expiryIn(5)},
				{ID: 2, Quantity: 20, ExpiryDate: expiryIn(1)},
			}, nil
		},
	}
	s := newTestInventoryService(batches, &fakeMedicineRepo{})

	plan, err := s.PlanAllocation(context.Background(), 7, 15)
	require.NoError(t, err)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, int64(2), plan.Entries[0].BatchID)
	assert.Equal(t, 0, plan.Remaining)
}

func TestCommitAllocationRequiresActor(t *testing.T) {
	s := newTestInventoryService(&fakeBatchRepo{}, &fakeMedicineRepo{})

	_, err := s.CommitAllocation(context.Background(), 1, 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidActor)
}

func TestCommitAllocationAppliesPlanWithSale(t *testing.T) {
	price := decimal.NewFromFloat(12.50)
	var appliedPlan domain.AllocationPlan
	var appliedSale *domain.SalesRecord

	batches := &fakeBatchRepo{
		getBatches: func(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
			return []domain.Batch{{ID: 3, Quantity: 8, ExpiryDate: expiryIn(4)}}, nil
		},
		applyPlan: func(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
			appliedPlan = plan
			appliedSale = sale
			return nil
		},
	}
	medicines := &fakeMedicineRepo{
		getMedicine: func(ctx context.Context, id int64) (*domain.Medicine, error) {
			return &domain.Medicine{ID: id, Name: "Paracetamol", Price: price}, nil
		},
	}
	s := newTestInventoryService(batches, medicines)

	plan, err := s.CommitAllocation(context.Background(), 1, 10, "pharmacist-1")
	require.NoError(t, err)

	// Partial fulfillment commits what the stock covers.
	assert.Equal(t, 8, plan.Allocated())
	assert.Equal(t, 2, plan.Remaining)
	assert.Equal(t, plan, appliedPlan)

	require.NotNil(t, appliedSale)
	assert.Equal(t, 8, appliedSale.Quantity)
	assert.True(t, price.Equal(appliedSale.UnitPrice))
	assert.Equal(t, testNow, appliedSale.SaleDate)
}

func TestCommitAllocationNoStockSkipsWrite(t *testing.T) {
	applied := false
	batches := &fakeBatchRepo{
		applyPlan: func(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
			applied = true
			return nil
		},
	}
	s := newTestInventoryService(batches, &fakeMedicineRepo{})

	plan, err := s.CommitAllocation(context.Background(), 1, 5, "pharmacist-1")
	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.Equal(t, 5, plan.Remaining)
	assert.False(t, applied)
}

func TestCommitAllocationStaleBatch(t *testing.T) {
	batches := &fakeBatchRepo{
		getBatches: func(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
			return []domain.Batch{{ID: 1, Quantity: 5, ExpiryDate: expiryIn(2)}}, nil
		},
		applyPlan: func(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
			return domain.ErrStaleBatch
		},
	}
	medicines := &fakeMedicineRepo{
		getMedicine: func(ctx context.Context, id int64) (*domain.Medicine, error) {
			return &domain.Medicine{ID: id, Name: "Paracetamol"}, nil
		},
	}
	s := newTestInventoryService(batches, medicines)

	_, err := s.CommitAllocation(context.Background(), 1, 3, "pharmacist-1")
	assert.ErrorIs(t, err, domain.ErrStaleBatch)
}

func TestExpiryOverviewClassifiesAndFilters(t *testing.T) {
	batches := &fakeBatchRepo{
		listActive: func(ctx context.Context) ([]domain.BatchExpiry, error) {
			return []domain.BatchExpiry{
				{Batch: domain.Batch{ID: 1, Quantity: 5, ExpiryDate: expiryIn(3)}, MedicineName: "Paracetamol"},
				{Batch: domain.Batch{ID: 2, Quantity: 5, ExpiryDate: expiryIn(20)}, MedicineName: "Ibuprofen"},
				{Batch: domain.Batch{ID: 3, Quantity: 5, ExpiryDate: expiryIn(90)}, MedicineName: "Cetirizine"},
			}, nil
		},
	}
	s := newTestInventoryService(batches, &fakeMedicineRepo{})

	all, err := s.ExpiryOverview(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ExpiryCritical, all[0].Status)
	assert.Equal(t, domain.ExpiryWarning, all[1].Status)
	assert.Equal(t, domain.ExpirySafe, all[2].Status)
	assert.True(t, all[0].SuggestedForSale)
	assert.False(t, all[2].SuggestedForSale)

	critical, err := s.ExpiryOverview(context.Background(), "critical")
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, int64(1), critical[0].ID)

	_, err = s.ExpiryOverview(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestReceiveBatchValidation(t *testing.T) {
	s := newTestInventoryService(&fakeBatchRepo{}, &fakeMedicineRepo{})

	err := s.ReceiveBatch(context.Background(), &domain.Batch{MedicineID: 1, Quantity: 5}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidActor)

	err = s.ReceiveBatch(context.Background(), &domain.Batch{Quantity: 5}, "clerk")
	assert.ErrorIs(t, err, domain.ErrMissingMedicine)

	err = s.ReceiveBatch(context.Background(), &domain.Batch{MedicineID: 1, Quantity: 0}, "clerk")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Unknown medicine is rejected before any insert.
	err = s.ReceiveBatch(context.Background(), &domain.Batch{MedicineID: 99, Quantity: 5}, "clerk")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiveBatchInserts(t *testing.T) {
	var inserted *domain.Batch
	batches := &fakeBatchRepo{
		insertBatch: func(ctx context.Context, batch *domain.Batch) error {
			inserted = batch
			return nil
		},
	}
	medicines := &fakeMedicineRepo{
		getMedicine: func(ctx context.Context, id int64) (*domain.Medicine, error) {
			return &domain.Medicine{ID: id, Name: "Paracetamol"}, nil
		},
	}
	s := newTestInventoryService(batches, medicines)

	batch := &domain.Batch{MedicineID: 1, BatchNumber: "B-77", Quantity: 40, ExpiryDate: expiryIn(120)}
	require.NoError(t, s.ReceiveBatch(context.Background(), batch, "clerk"))
	assert.Equal(t, batch, inserted)
}
