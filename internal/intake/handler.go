// internal/intake/handler.go
package intake

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Handler receives stock receipts from suppliers and turns them into
// inventory batches.
type Handler struct {
	inventory *service.InventoryService
}

func NewHandler(inventory *service.InventoryService) *Handler {
	return &Handler{inventory: inventory}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/receipts", h.ReceiveStock).Methods("POST")
}

type receiptRequest struct {
	MedicineID  int64           `json:"medicine_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    int             `json:"quantity"`
	ExpiryDate  string          `json:"expiry_date"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	ReceivedBy  string          `json:"received_by"`
}

func (h *Handler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	expiry, err := time.Parse("2006-01-02", strings.TrimSpace(req.ExpiryDate))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expiry_date must be YYYY-MM-DD"})
		return
	}

	batch := &domain.Batch{
		MedicineID:  req.MedicineID,
		BatchNumber: strings.TrimSpace(req.BatchNumber),
		Quantity:    req.Quantity,
		ExpiryDate:  expiry,
		CostPrice:   req.CostPrice,
	}

	if err := h.inventory.ReceiveBatch(r.Context(), batch, strings.TrimSpace(req.ReceivedBy)); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity),
			errors.Is(err, domain.ErrMissingMedicine),
			errors.Is(err, domain.ErrInvalidActor):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	log.Info().
		Int64("medicine_id", batch.MedicineID).
		Str("batch_number", batch.BatchNumber).
		Int("quantity", batch.Quantity).
		Msg("stock receipt recorded")

	writeJSON(w, http.StatusCreated, batch)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
