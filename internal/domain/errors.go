// internal/domain/errors.go
package domain

import "errors"

// Input validation errors are returned before any data is fetched or
// written. Insufficient stock is deliberately not an error: the allocator
// reports it through AllocationPlan.Remaining and the caller decides.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrMissingMedicine = errors.New("medicine id is required")
	ErrInvalidActor    = errors.New("actor is required for write operations")
	ErrNotFound        = errors.New("not found")
	ErrStaleBatch      = errors.New("batch quantity changed concurrently")
	ErrInvalidStatus   = errors.New("invalid status transition")
)
