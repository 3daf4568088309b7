// internal/service/medicine_service.go
package service

import (
	"context"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/repository"
	"github.com/pharmadash/backend-go/internal/substitute"
)

type MedicineService struct {
	medicines repository.MedicineRepository
}

func NewMedicineService(medicines repository.MedicineRepository) *MedicineService {
	return &MedicineService{medicines: medicines}
}

func (s *MedicineService) List(ctx context.Context, search string, page, pageSize int) ([]domain.Medicine, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return s.medicines.ListMedicines(ctx, search, pageSize, (page-1)*pageSize)
}

func (s *MedicineService) Get(ctx context.Context, id int64) (*domain.Medicine, error) {
	if id <= 0 {
		return nil, domain.ErrMissingMedicine
	}
	return s.medicines.GetMedicine(ctx, id)
}

// Substitutes suggests alternatives by composition word overlap. The score
// is lexical only; results carry no clinical guarantee.
func (s *MedicineService) Substitutes(ctx context.Context, id int64) ([]substitute.Match, error) {
	medicine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.medicines.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	others := make([]domain.Medicine, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != id {
			others = append(others, c)
		}
	}

	return substitute.Rank(medicine.Composition, others, substitute.DefaultThreshold), nil
}
