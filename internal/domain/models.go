// internal/domain/models.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine represents a catalog entry
type Medicine struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	GenericName  string          `json:"generic_name" db:"generic_name"`
	Composition  string          `json:"composition" db:"composition"`
	Manufacturer string          `json:"manufacturer" db:"manufacturer"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Batch is a received lot of a medicine. Quantity only ever decreases after
// receipt; zero-quantity batches are kept as history and never deleted.
type Batch struct {
	ID          int64           `json:"id" db:"id"`
	MedicineID  int64           `json:"medicine_id" db:"medicine_id"`
	BatchNumber string          `json:"batch_number" db:"batch_number"`
	Quantity    int             `json:"quantity" db:"quantity"`
	ExpiryDate  time.Time       `json:"expiry_date" db:"expiry_date"`
	CostPrice   decimal.Decimal `json:"cost_price" db:"cost_price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// BatchExpiry pairs a batch with its expiry classification.
type BatchExpiry struct {
	Batch
	MedicineName     string       `json:"medicine_name" db:"medicine_name"`
	DaysToExpiry     int          `json:"days_to_expiry" db:"-"`
	Status           ExpiryStatus `json:"status" db:"-"`
	SuggestedForSale bool         `json:"suggested_for_sale" db:"-"`
}

// SalesRecord is an immutable, append-only sale transaction.
type SalesRecord struct {
	ID         int64           `json:"id" db:"id"`
	MedicineID int64           `json:"medicine_id" db:"medicine_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	SaleDate   time.Time       `json:"sale_date" db:"sale_date"`
}

// AllocationEntry is one (batch, quantity) pair of an allocation plan.
type AllocationEntry struct {
	BatchID     int64     `json:"batch_id"`
	BatchNumber string    `json:"batch_number"`
	Taken       int       `json:"taken"`
	ExpiryDate  time.Time `json:"expiry_date"`
}

// AllocationPlan is the transient output of FEFO planning. The planner never
// writes; applying the deductions is a separate, atomic step.
type AllocationPlan struct {
	MedicineID int64             `json:"medicine_id"`
	Requested  int               `json:"requested"`
	Entries    []AllocationEntry `json:"entries"`
	Remaining  int               `json:"remaining"`
}

// Satisfied reports whether the plan covers the full requested quantity.
func (p AllocationPlan) Satisfied() bool {
	return p.Remaining == 0
}

// Allocated returns the total quantity taken across all entries.
func (p AllocationPlan) Allocated() int {
	total := 0
	for _, e := range p.Entries {
		total += e.Taken
	}
	return total
}

// SurgeForecast is recomputed per request and never persisted. The surge
// probability is a bounded ranking signal (5-95), not a calibrated
// probability.
type SurgeForecast struct {
	MedicineID               int64    `json:"medicine_id"`
	MedicineName             string   `json:"medicine_name"`
	CurrentPrice             float64  `json:"current_price"`
	PredictedPrice           float64  `json:"predicted_price"`
	PriceChangePercent       float64  `json:"price_change_percent"`
	SurgeProbability         float64  `json:"surge_probability"`
	RecommendedStockQuantity int      `json:"recommended_stock_quantity"`
	ContributingFactors      []string `json:"contributing_factors"`
}

// ReorderStatus values for the low-stock request workflow.
const (
	ReorderPending   = "pending"
	ReorderApproved  = "approved"
	ReorderRejected  = "rejected"
	ReorderFulfilled = "fulfilled"
)

// ReorderRequest is a restock request raised when stock runs low.
type ReorderRequest struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	MedicineID   int64      `json:"medicine_id" db:"medicine_id"`
	MedicineName string     `json:"medicine_name" db:"medicine_name"`
	Quantity     int        `json:"quantity" db:"quantity"`
	Status       string     `json:"status" db:"status"`
	Note         string     `json:"note" db:"note"`
	RequestedBy  string     `json:"requested_by" db:"requested_by"`
	DecidedBy    *string    `json:"decided_by" db:"decided_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DecidedAt    *time.Time `json:"decided_at" db:"decided_at"`
}

// LowStockItem is a medicine whose on-hand stock fell below the reorder
// threshold.
type LowStockItem struct {
	MedicineID   int64  `json:"medicine_id" db:"medicine_id"`
	MedicineName string `json:"medicine_name" db:"medicine_name"`
	CurrentStock int    `json:"current_stock" db:"current_stock"`
	Threshold    int    `json:"threshold" db:"-"`
}

// AuditEntry records a stock movement or workflow decision. Writes are
// fire-and-forget; a failed audit write must never block the primary result.
type AuditEntry struct {
	ID         int64     `json:"id" db:"id"`
	Actor      string    `json:"actor" db:"actor"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Action     string    `json:"action" db:"action"`
	Detail     string    `json:"detail" db:"detail"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
