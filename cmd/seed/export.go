package main

import (
	"fmt"
	"log"
	"time"

	"github.com/pharmadash/backend-go/internal/cache"
	"github.com/pharmadash/backend-go/internal/config"
	"github.com/pharmadash/backend-go/internal/forecast"
	"github.com/pharmadash/backend-go/internal/report"
	"github.com/pharmadash/backend-go/internal/repository/postgres"
	"github.com/pharmadash/backend-go/internal/service"
	"github.com/pharmadash/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

// exportForecast builds the price surge dashboard from current data and
// uploads it as a dated CSV report to object storage.
func exportForecast(c *cli.Context) error {
	cfg := config.Load()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	medicineRepo := postgres.NewMedicineRepository(db)
	salesRepo := postgres.NewSalesRepository(db)

	estimator := forecast.NewEstimator(cfg.Forecast.SampleWindow)
	forecastService := service.NewForecastService(
		medicineRepo,
		salesRepo,
		cache.NewNoopForecastCache(),
		estimator,
		cfg.Forecast.LookbackDays,
		cfg.Forecast.TopN,
	)

	forecasts, err := forecastService.GetDashboard(c.Context)
	if err != nil {
		return fmt.Errorf("failed to build forecast dashboard: %w", err)
	}

	data, err := report.BuildSurgeReport(forecasts)
	if err != nil {
		return fmt.Errorf("failed to render forecast report: %w", err)
	}

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	key := report.SurgeReportKey(time.Now())
	if err := store.UploadObject(c.Context, key, data); err != nil {
		return fmt.Errorf("failed to upload forecast report: %w", err)
	}

	log.Printf("uploaded forecast report %s (%d medicines, %d bytes)", key, len(forecasts), len(data))
	return nil
}
