package intake

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMedicineRepo struct{}

func (stubMedicineRepo) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	if id == 404 {
		return nil, domain.ErrNotFound
	}
	return &domain.Medicine{ID: id, Name: "Paracetamol"}, nil
}

func (stubMedicineRepo) ListMedicines(ctx context.Context, search string, limit, offset int) ([]domain.Medicine, error) {
	return nil, nil
}

func (stubMedicineRepo) ListAll(ctx context.Context) ([]domain.Medicine, error) { return nil, nil }

func (stubMedicineRepo) GetCurrentStock(ctx context.Context, medicineID int64) (int, error) {
	return 0, nil
}

func (stubMedicineRepo) GetStockLevels(ctx context.Context) (map[int64]int, error) { return nil, nil }

func (stubMedicineRepo) GetLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	return nil, nil
}

type stubBatchRepo struct {
	inserted *domain.Batch
}

func (s *stubBatchRepo) GetBatches(ctx context.Context, medicineID int64, onlyAvailable bool) ([]domain.Batch, error) {
	return nil, nil
}

func (s *stubBatchRepo) ListActive(ctx context.Context) ([]domain.BatchExpiry, error) {
	return nil, nil
}

func (s *stubBatchRepo) InsertBatch(ctx context.Context, batch *domain.Batch) error {
	s.inserted = batch
	return nil
}

func (s *stubBatchRepo) ApplyPlan(ctx context.Context, plan domain.AllocationPlan, sale *domain.SalesRecord) error {
	return nil
}

func newTestRouter(batches *stubBatchRepo) *mux.Router {
	inventory := service.NewInventoryService(batches, stubMedicineRepo{}, nil, 30)
	r := mux.NewRouter()
	NewHandler(inventory).RegisterRoutes(r)
	return r
}

func postReceipt(t *testing.T, r *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestReceiveStockCreatesBatch(t *testing.T) {
	batches := &stubBatchRepo{}
	r := newTestRouter(batches)

	rec := postReceipt(t, r, `{
		"medicine_id": 7,
		"batch_number": "B-2026-09",
		"quantity": 120,
		"expiry_date": "2027-06-30",
		"cost_price": "4.25",
		"received_by": "clerk-1"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, batches.inserted)
	assert.Equal(t, int64(7), batches.inserted.MedicineID)
	assert.Equal(t, "B-2026-09", batches.inserted.BatchNumber)
	assert.Equal(t, 120, batches.inserted.Quantity)
	assert.Equal(t, time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), batches.inserted.ExpiryDate)
}

func TestReceiveStockRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad expiry date", `{"medicine_id":1,"quantity":5,"expiry_date":"30/06/2027","received_by":"c"}`, http.StatusBadRequest},
		{"missing actor", `{"medicine_id":1,"quantity":5,"expiry_date":"2027-06-30"}`, http.StatusBadRequest},
		{"zero quantity", `{"medicine_id":1,"quantity":0,"expiry_date":"2027-06-30","received_by":"c"}`, http.StatusBadRequest},
		{"unknown medicine", `{"medicine_id":404,"quantity":5,"expiry_date":"2027-06-30","received_by":"c"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := &stubBatchRepo{}
			rec := postReceipt(t, newTestRouter(batches), tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, batches.inserted)
		})
	}
}
