// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmadash/backend-go/internal/api"
	"github.com/pharmadash/backend-go/internal/audit"
	"github.com/pharmadash/backend-go/internal/cache"
	"github.com/pharmadash/backend-go/internal/config"
	"github.com/pharmadash/backend-go/internal/forecast"
	"github.com/pharmadash/backend-go/internal/repository/postgres"
	"github.com/pharmadash/backend-go/internal/service"
	"github.com/pharmadash/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	medicineRepo := postgres.NewMedicineRepository(db)
	batchRepo := postgres.NewBatchRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	reorderRepo := postgres.NewReorderRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Initialize forecast cache (falls back to a no-op cache when Redis is
	// disabled or unreachable)
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Forecast cache unavailable, continuing without caching")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Initialize services
	recorder := audit.NewRecorder(auditRepo)
	estimator := forecast.NewEstimator(cfg.Forecast.SampleWindow)

	services := &api.Services{
		Inventory: service.NewInventoryService(batchRepo, medicineRepo, recorder, cfg.App.AlertDays),
		Forecast:  service.NewForecastService(medicineRepo, salesRepo, forecastCache, estimator, cfg.Forecast.LookbackDays, cfg.Forecast.TopN),
		Reorder:   service.NewReorderService(reorderRepo, medicineRepo, recorder, cfg.App.ReorderThreshold),
		Medicine:  service.NewMedicineService(medicineRepo),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
