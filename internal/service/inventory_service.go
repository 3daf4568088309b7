// internal/service/inventory_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmadash/backend-go/internal/audit"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/planner"
	"github.com/pharmadash/backend-go/internal/repository"
)

type InventoryService struct {
	batches   repository.BatchRepository
	medicines repository.MedicineRepository
	recorder  *audit.Recorder
	alertDays int
	now       func() time.Time
}

func NewInventoryService(batches repository.BatchRepository, medicines repository.MedicineRepository, recorder *audit.Recorder, alertDays int) *InventoryService {
	if alertDays <= 0 {
		alertDays = domain.DefaultAlertDays
	}
	return &InventoryService{
		batches:   batches,
		medicines: medicines,
		recorder:  recorder,
		alertDays: alertDays,
		now:       time.Now,
	}
}

// PlanAllocation fetches the available batches for a medicine and builds a
// FEFO plan. Nothing is written; remaining > 0 in the result means the
// stock cannot cover the request.
func (s *InventoryService) PlanAllocation(ctx context.Context, medicineID int64, quantity int) (domain.AllocationPlan, error) {
	if medicineID <= 0 {
		return domain.AllocationPlan{}, domain.ErrMissingMedicine
	}
	if quantity <= 0 {
		return domain.AllocationPlan{}, domain.ErrInvalidQuantity
	}

	batches, err := s.batches.GetBatches(ctx, medicineID, true)
	if err != nil {
		return domain.AllocationPlan{}, err
	}

	return planner.Plan(medicineID, quantity, batches), nil
}

// CommitAllocation plans and applies a sale in one call: batch quantities
// are decremented atomically and the sale is appended in the same
// transaction. Partial fulfillment is committed as-is; the returned plan's
// Remaining tells the caller what could not be covered.
func (s *InventoryService) CommitAllocation(ctx context.Context, medicineID int64, quantity int, actor string) (domain.AllocationPlan, error) {
	if actor == "" {
		return domain.AllocationPlan{}, domain.ErrInvalidActor
	}

	plan, err := s.PlanAllocation(ctx, medicineID, quantity)
	if err != nil {
		return domain.AllocationPlan{}, err
	}
	if len(plan.Entries) == 0 {
		return plan, nil
	}

	medicine, err := s.medicines.GetMedicine(ctx, medicineID)
	if err != nil {
		return domain.AllocationPlan{}, err
	}

	sale := &domain.SalesRecord{
		MedicineID: medicineID,
		Quantity:   plan.Allocated(),
		UnitPrice:  medicine.Price,
		SaleDate:   s.now(),
	}

	if err := s.batches.ApplyPlan(ctx, plan, sale); err != nil {
		return domain.AllocationPlan{}, err
	}

	s.recorder.Record(domain.AuditEntry{
		Actor:      actor,
		EntityType: "allocation",
		EntityID:   fmt.Sprintf("medicine:%d", medicineID),
		Action:     "commit",
		Detail:     fmt.Sprintf("allocated %d of %d requested across %d batches", plan.Allocated(), plan.Requested, len(plan.Entries)),
	})

	return plan, nil
}

// BatchesForMedicine returns a medicine's batches with their expiry
// classification attached.
func (s *InventoryService) BatchesForMedicine(ctx context.Context, medicineID int64) ([]domain.BatchExpiry, error) {
	if medicineID <= 0 {
		return nil, domain.ErrMissingMedicine
	}

	medicine, err := s.medicines.GetMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	batches, err := s.batches.GetBatches(ctx, medicineID, false)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]domain.BatchExpiry, 0, len(batches))
	for _, b := range batches {
		entry := domain.BatchExpiry{Batch: b, MedicineName: medicine.Name}
		s.classify(&entry, now)
		result = append(result, entry)
	}

	return result, nil
}

// ExpiryOverview lists all in-stock batches classified by expiry status,
// optionally filtered to a single status, soonest expiry first.
func (s *InventoryService) ExpiryOverview(ctx context.Context, statusFilter string) ([]domain.BatchExpiry, error) {
	var filter domain.ExpiryStatus
	if statusFilter != "" {
		parsed, ok := domain.ParseExpiryStatus(statusFilter)
		if !ok {
			return nil, fmt.Errorf("unknown expiry status %q", statusFilter)
		}
		filter = parsed
	}

	batches, err := s.batches.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]domain.BatchExpiry, 0, len(batches))
	for i := range batches {
		s.classify(&batches[i], now)
		if filter != "" && batches[i].Status != filter {
			continue
		}
		result = append(result, batches[i])
	}

	return result, nil
}

// ReceiveBatch records a stock receipt as a new batch.
func (s *InventoryService) ReceiveBatch(ctx context.Context, batch *domain.Batch, actor string) error {
	if actor == "" {
		return domain.ErrInvalidActor
	}
	if batch.MedicineID <= 0 {
		return domain.ErrMissingMedicine
	}
	if batch.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	if _, err := s.medicines.GetMedicine(ctx, batch.MedicineID); err != nil {
		return err
	}

	if err := s.batches.InsertBatch(ctx, batch); err != nil {
		return err
	}

	s.recorder.Record(domain.AuditEntry{
		Actor:      actor,
		EntityType: "batch",
		EntityID:   fmt.Sprintf("%d", batch.ID),
		Action:     "receive",
		Detail:     fmt.Sprintf("received %d units of medicine %d, batch %s", batch.Quantity, batch.MedicineID, batch.BatchNumber),
	})

	return nil
}

func (s *InventoryService) classify(entry *domain.BatchExpiry, now time.Time) {
	c := domain.ClassifyExpiry(entry.ExpiryDate, now, s.alertDays)
	entry.DaysToExpiry = c.DaysToExpiry
	entry.Status = c.Status
	entry.SuggestedForSale = c.SuggestedForSale
}
