// internal/service/reorder_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmadash/backend-go/internal/audit"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
)

// validTransitions holds the allowed reorder status changes.
var validTransitions = map[string]map[string]bool{
	domain.ReorderPending: {
		domain.ReorderApproved: true,
		domain.ReorderRejected: true,
	},
	domain.ReorderApproved: {
		domain.ReorderFulfilled: true,
	},
}

type ReorderService struct {
	reorders  repository.ReorderRepository
	medicines repository.MedicineRepository
	recorder  *audit.Recorder
	threshold int
}

func NewReorderService(reorders repository.ReorderRepository, medicines repository.MedicineRepository, recorder *audit.Recorder, threshold int) *ReorderService {
	if threshold <= 0 {
		threshold = 10
	}
	return &ReorderService{
		reorders:  reorders,
		medicines: medicines,
		recorder:  recorder,
		threshold: threshold,
	}
}

// Create raises a restock request. The requesting actor is an explicit
// parameter; there is no implicit current user.
func (s *ReorderService) Create(ctx context.Context, medicineID int64, quantity int, requestedBy, note string) (*domain.ReorderRequest, error) {
	if requestedBy == "" {
		return nil, domain.ErrInvalidActor
	}
	if medicineID <= 0 {
		return nil, domain.ErrMissingMedicine
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	medicine, err := s.medicines.GetMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	req := &domain.ReorderRequest{
		ID:           uuid.New(),
		MedicineID:   medicineID,
		MedicineName: medicine.Name,
		Quantity:     quantity,
		Status:       domain.ReorderPending,
		Note:         note,
		RequestedBy:  requestedBy,
	}

	if err := s.reorders.Insert(ctx, req); err != nil {
		return nil, err
	}

	s.recorder.Record(domain.AuditEntry{
		Actor:      requestedBy,
		EntityType: "reorder_request",
		EntityID:   req.ID.String(),
		Action:     "create",
		Detail:     fmt.Sprintf("requested %d units of %s", quantity, medicine.Name),
	})

	return req, nil
}

// Decide moves a request to a new status, enforcing the
// pending -> approved|rejected -> fulfilled lifecycle.
func (s *ReorderService) Decide(ctx context.Context, id uuid.UUID, status, actor string) (*domain.ReorderRequest, error) {
	if actor == "" {
		return nil, domain.ErrInvalidActor
	}

	req, err := s.reorders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !validTransitions[req.Status][status] {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, req.Status, status)
	}

	if err := s.reorders.UpdateStatus(ctx, id, status, actor); err != nil {
		return nil, err
	}

	s.recorder.Record(domain.AuditEntry{
		Actor:      actor,
		EntityType: "reorder_request",
		EntityID:   id.String(),
		Action:     status,
		Detail:     fmt.Sprintf("%s -> %s", req.Status, status),
	})

	return s.reorders.Get(ctx, id)
}

func (s *ReorderService) List(ctx context.Context, status string, page, pageSize int) ([]domain.ReorderRequest, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return s.reorders.List(ctx, status, pageSize, (page-1)*pageSize)
}

// LowStock lists medicines whose on-hand stock is below the reorder
// threshold.
func (s *ReorderService) LowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.medicines.GetLowStock(ctx, s.threshold)
}
