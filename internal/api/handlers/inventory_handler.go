package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type allocationRequest struct {
	MedicineID int64  `json:"medicine_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Actor      string `json:"actor"`
}

func (h *InventoryHandler) GetBatches(c *gin.Context) {
	medicineID, err := strconv.ParseInt(strings.TrimSpace(c.Query("medicine_id")), 10, 64)
	if err != nil || medicineID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "medicine_id query parameter is required"})
		return
	}

	batches, err := h.service.BatchesForMedicine(c.Request.Context(), medicineID)
	if err != nil {
		respondError(c, err, "failed to fetch batches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func (h *InventoryHandler) GetExpiryOverview(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))

	batches, err := h.service.ExpiryOverview(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "failed to fetch expiry overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches, "total": len(batches)})
}

// PlanAllocation is a dry run: it returns the FEFO plan without touching
// stock.
func (h *InventoryHandler) PlanAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	plan, err := h.service.PlanAllocation(c.Request.Context(), req.MedicineID, req.Quantity)
	if err != nil {
		respondError(c, err, "failed to plan allocation")
		return
	}

	c.JSON(http.StatusOK, planResponse(plan))
}

func (h *InventoryHandler) CommitAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	plan, err := h.service.CommitAllocation(c.Request.Context(), req.MedicineID, req.Quantity, strings.TrimSpace(req.Actor))
	if err != nil {
		respondError(c, err, "failed to commit allocation")
		return
	}

	c.JSON(http.StatusOK, planResponse(plan))
}

func planResponse(plan domain.AllocationPlan) gin.H {
	return gin.H{
		"plan":      plan,
		"satisfied": plan.Satisfied(),
		"allocated": plan.Allocated(),
	}
}
