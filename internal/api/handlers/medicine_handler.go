package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/service"
)

type MedicineHandler struct {
	service *service.MedicineService
}

func NewMedicineHandler(service *service.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

func (h *MedicineHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	search := strings.TrimSpace(c.Query("search"))

	medicines, err := h.service.List(c.Request.Context(), search, page, pageSize)
	if err != nil {
		respondError(c, err, "failed to list medicines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

func (h *MedicineHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	medicine, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch medicine")
		return
	}

	c.JSON(http.StatusOK, medicine)
}

func (h *MedicineHandler) Substitutes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	matches, err := h.service.Substitutes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to find substitutes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"substitutes": matches})
}
