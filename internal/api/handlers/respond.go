package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/domain"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognized
// is treated as a fetch/storage failure.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingMedicine),
		errors.Is(err, domain.ErrInvalidActor),
		errors.Is(err, domain.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStaleBatch):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
