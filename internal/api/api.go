// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/api/handlers"
	"github.com/pharmadash/backend-go/internal/api/middleware"
	"github.com/pharmadash/backend-go/internal/service"
)

type Services struct {
	Inventory *service.InventoryService
	Forecast  *service.ForecastService
	Reorder   *service.ReorderService
	Medicine  *service.MedicineService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Medicine != nil {
			medicineHandler := handlers.NewMedicineHandler(services.Medicine)
			medicineGroup := apiGroup.Group("/medicines")
			{
				medicineGroup.GET("", medicineHandler.List)
				medicineGroup.GET("/:id", medicineHandler.Get)
				medicineGroup.GET("/:id/substitutes", medicineHandler.Substitutes)
			}
		}

		if services.Inventory != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/batches", inventoryHandler.GetBatches)
				inventoryGroup.GET("/expiry", inventoryHandler.GetExpiryOverview)
				inventoryGroup.POST("/allocations/plan", inventoryHandler.PlanAllocation)
				inventoryGroup.POST("/allocations/commit", inventoryHandler.CommitAllocation)
			}
		}

		if services.Forecast != nil {
			forecastHandler := handlers.NewForecastHandler(services.Forecast)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/price_surge", forecastHandler.GetDashboard)
				analyticsGroup.GET("/price_surge/:id", forecastHandler.GetForecast)
			}
		}

		if services.Reorder != nil {
			reorderHandler := handlers.NewReorderHandler(services.Reorder)
			reorderGroup := apiGroup.Group("/reorders")
			{
				reorderGroup.GET("", reorderHandler.List)
				reorderGroup.POST("", reorderHandler.Create)
				reorderGroup.PUT("/:id/status", reorderHandler.UpdateStatus)
				reorderGroup.GET("/low_stock", reorderHandler.LowStock)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
