// internal/planner/fefo.go
package planner

import (
	"sort"

	"github.com/pharmadash/backend-go/internal/domain"
)

// Plan builds a first-expiry-first-out allocation for quantityNeeded units
// of a medicine over the given batches. It is a pure planning function: no
// writes happen here, and applying the deductions must be done in a
// separate atomic step.
//
// Batches with zero quantity are skipped. Remaining > 0 signals
// insufficient stock; the caller decides whether to partially fulfill,
// reject, or trigger a reorder. quantityNeeded <= 0 yields an empty plan.
func Plan(medicineID int64, quantityNeeded int, batches []domain.Batch) domain.AllocationPlan {
	plan := domain.AllocationPlan{MedicineID: medicineID}
	if quantityNeeded <= 0 {
		return plan
	}
	plan.Requested = quantityNeeded
	plan.Remaining = quantityNeeded

	available := make([]domain.Batch, 0, len(batches))
	for _, b := range batches {
		if b.Quantity > 0 {
			available = append(available, b)
		}
	}

	// Earliest expiry first; batch id breaks ties deterministically.
	sort.Slice(available, func(i, j int) bool {
		if available[i].ExpiryDate.Equal(available[j].ExpiryDate) {
			return available[i].ID < available[j].ID
		}
		return available[i].ExpiryDate.Before(available[j].ExpiryDate)
	})

	for _, b := range available {
		if plan.Remaining == 0 {
			break
		}
		taken := b.Quantity
		if taken > plan.Remaining {
			taken = plan.Remaining
		}
		plan.Entries = append(plan.Entries, domain.AllocationEntry{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Taken:       taken,
			ExpiryDate:  b.ExpiryDate,
		})
		plan.Remaining -= taken
	}

	return plan
}
