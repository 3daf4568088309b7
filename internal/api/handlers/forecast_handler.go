package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetDashboard(c *gin.Context) {
	forecasts, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch surge dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	medicineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || medicineID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medicine id"})
		return
	}

	forecast, err := h.service.GetForecast(c.Request.Context(), medicineID)
	if err != nil {
		respondError(c, err, "failed to fetch forecast")
		return
	}

	c.JSON(http.StatusOK, forecast)
}
