// internal/service/forecast_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/pharmadash/backend-go/internal/cache"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/pharmadash/backend-go/internal/forecast"
	"github.com/pharmadash/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultLookbackDays = 180
	defaultTopN         = 20
)

type ForecastService struct {
	medicines    repository.MedicineRepository
	sales        repository.SalesRepository
	cache        cache.ForecastCache
	estimator    *forecast.Estimator
	lookbackDays int
	topN         int
	now          func() time.Time
}

func NewForecastService(medicines repository.MedicineRepository, sales repository.SalesRepository, cacheImpl cache.ForecastCache, estimator *forecast.Estimator, lookbackDays, topN int) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	if estimator == nil {
		estimator = forecast.NewEstimator(0)
	}
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}
	if topN <= 0 {
		topN = defaultTopN
	}
	return &ForecastService{
		medicines:    medicines,
		sales:        sales,
		cache:        cacheImpl,
		estimator:    estimator,
		lookbackDays: lookbackDays,
		topN:         topN,
		now:          time.Now,
	}
}

// GetDashboard scores every medicine and returns the top entries ranked by
// surge probability, highest first.
func (s *ForecastService) GetDashboard(ctx context.Context) ([]domain.SurgeForecast, error) {
	if forecasts, ok, err := s.cache.GetDashboard(ctx, s.topN, s.lookbackDays); err == nil && ok {
		return forecasts, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get dashboard failed")
	}

	medicines, err := s.medicines.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stocks, err := s.medicines.GetStockLevels(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -s.lookbackDays)
	forecasts := make([]domain.SurgeForecast, 0, len(medicines))
	for _, m := range medicines {
		history, err := s.sales.GetSalesHistory(ctx, m.ID, since)
		if err != nil {
			return nil, err
		}
		f := s.estimator.Estimate(m.ID, m.Name, m.Price.InexactFloat64(), stocks[m.ID], history)
		forecasts = append(forecasts, f)
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].SurgeProbability > forecasts[j].SurgeProbability
	})
	if len(forecasts) > s.topN {
		forecasts = forecasts[:s.topN]
	}

	if err := s.cache.SetDashboard(ctx, s.topN, s.lookbackDays, forecasts); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set dashboard failed")
	}

	return forecasts, nil
}

// GetForecast estimates the surge forecast for a single medicine.
func (s *ForecastService) GetForecast(ctx context.Context, medicineID int64) (*domain.SurgeForecast, error) {
	if medicineID <= 0 {
		return nil, domain.ErrMissingMedicine
	}

	medicine, err := s.medicines.GetMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	stock, err := s.medicines.GetCurrentStock(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -s.lookbackDays)
	history, err := s.sales.GetSalesHistory(ctx, medicineID, since)
	if err != nil {
		return nil, err
	}

	f := s.estimator.Estimate(medicine.ID, medicine.Name, medicine.Price.InexactFloat64(), stock, history)
	return &f, nil
}
