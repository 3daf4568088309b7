package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmadash/backend-go/internal/service"
)

type ReorderHandler struct {
	service *service.ReorderService
}

func NewReorderHandler(service *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{service: service}
}

type createReorderRequest struct {
	MedicineID  int64  `json:"medicine_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	RequestedBy string `json:"requested_by"`
	Note        string `json:"note"`
}

type decideReorderRequest struct {
	Status string `json:"status" binding:"required"`
	Actor  string `json:"actor"`
}

func (h *ReorderHandler) Create(c *gin.Context) {
	var req createReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.MedicineID, req.Quantity, strings.TrimSpace(req.RequestedBy), req.Note)
	if err != nil {
		respondError(c, err, "failed to create reorder request")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ReorderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reorder id"})
		return
	}

	var req decideReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.Decide(c.Request.Context(), id, strings.ToLower(strings.TrimSpace(req.Status)), strings.TrimSpace(req.Actor))
	if err != nil {
		respondError(c, err, "failed to update reorder request")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ReorderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	requests, total, err := h.service.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		respondError(c, err, "failed to list reorder requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    total,
	})
}

func (h *ReorderHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list low stock medicines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
