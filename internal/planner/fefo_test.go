package planner

import (
	"testing"
	"time"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, n)
}

func TestPlanTakesEarliestExpiryFirst(t *testing.T) {
	batches := []domain.Batch{
		{ID: 1, MedicineID: 7, BatchNumber: "B-1", Quantity: 10, ExpiryDate: day(5)},
		{ID: 2, MedicineID: 7, BatchNumber: "B-2", Quantity: 20, ExpiryDate: day(1)},
	}

	plan := Plan(7, 15, batches)

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, int64(2), plan.Entries[0].BatchID)
	assert.Equal(t, 15, plan.Entries[0].Taken)
	assert.Equal(t, 0, plan.Remaining)
	assert.True(t, plan.Satisfied())
	assert.Equal(t, 15, plan.Allocated())
}

func TestPlanSpansMultipleBatches(t *testing.T) {
	batches := []domain.Batch{
		{ID: 1, Quantity: 5, ExpiryDate: day(3)},
		{ID: 2, Quantity: 5, ExpiryDate: day(1)},
		{ID: 3, Quantity: 5, ExpiryDate: day(2)},
	}

	plan := Plan(1, 12, batches)

	require.Len(t, plan.Entries, 3)
	assert.Equal(t, int64(2), plan.Entries[0].BatchID)
	assert.Equal(t, int64(3), plan.Entries[1].BatchID)
	assert.Equal(t, int64(1), plan.Entries[2].BatchID)
	assert.Equal(t, []int{5, 5, 2}, []int{
		plan.Entries[0].Taken, plan.Entries[1].Taken, plan.Entries[2].Taken,
	})
	assert.Equal(t, 0, plan.Remaining)
}

func TestPlanReportsShortfall(t *testing.T) {
	batches := []domain.Batch{
		{ID: 1, Quantity: 4, ExpiryDate: day(1)},
	}

	plan := Plan(1, 10, batches)

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, 4, plan.Allocated())
	assert.Equal(t, 6, plan.Remaining)
	assert.False(t, plan.Satisfied())
}

func TestPlanSkipsEmptyBatches(t *testing.T) {
	batches := []domain.Batch{
		{ID: 1, Quantity: 0, ExpiryDate: day(0)},
		{ID: 2, Quantity: 3, ExpiryDate: day(9)},
	}

	plan := Plan(1, 3, batches)

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, int64(2), plan.Entries[0].BatchID)
}

func TestPlanBreaksExpiryTiesByBatchID(t *testing.T) {
	batches := []domain.Batch{
		{ID: 9, Quantity: 10, ExpiryDate: day(2)},
		{ID: 3, Quantity: 10, ExpiryDate: day(2)},
	}

	plan := Plan(1, 5, batches)

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, int64(3), plan.Entries[0].BatchID)
}

func TestPlanNonPositiveQuantity(t *testing.T) {
	batches := []domain.Batch{
		{ID: 1, Quantity: 10, ExpiryDate: day(1)},
	}

	for _, qty := range []int{0, -4} {
		plan := Plan(1, qty, batches)
		assert.Empty(t, plan.Entries)
		assert.Equal(t, 0, plan.Requested)
		assert.Equal(t, 0, plan.Remaining)
	}
}

func TestPlanNoBatches(t *testing.T) {
	plan := Plan(1, 5, nil)

	assert.Empty(t, plan.Entries)
	assert.Equal(t, 5, plan.Remaining)
	assert.False(t, plan.Satisfied())
}
