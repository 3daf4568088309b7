package service

import (
	"context"
	"testing"

	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutesExcludesSelf(t *testing.T) {
	catalog := []domain.Medicine{
		{ID: 1, Name: "Calpol", Composition: "paracetamol 500mg"},
		{ID: 2, Name: "Dolo", Composition: "paracetamol 500mg"},
		{ID: 3, Name: "Brufen", Composition: "ibuprofen 400mg"},
	}
	medicines := &fakeMedicineRepo{
		getMedicine: func(ctx context.Context, id int64) (*domain.Medicine, error) {
			for i := range catalog {
				if catalog[i].ID == id {
					return &catalog[i], nil
				}
			}
			return nil, domain.ErrNotFound
		},
		listAll: func(ctx context.Context) ([]domain.Medicine, error) {
			return catalog, nil
		},
	}
	s := NewMedicineService(medicines)

	matches, err := s.Substitutes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Dolo", matches[0].Medicine.Name)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestSubstitutesValidation(t *testing.T) {
	s := NewMedicineService(&fakeMedicineRepo{})

	_, err := s.Substitutes(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrMissingMedicine)

	_, err = s.Substitutes(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMedicineListDefaultsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	medicines := &fakeMedicineRepo{
		listMedicines: func(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	s := NewMedicineService(medicines)

	_, err := s.List(context.Background(), "", -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = s.List(context.Background(), "para", 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, gotLimit)
	assert.Equal(t, 25, gotOffset)
}
