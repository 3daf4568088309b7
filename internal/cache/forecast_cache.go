package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pharmadash/backend-go/internal/config"
	"github.com/pharmadash/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	forecastDashboardKeyPrefix = "forecast:dashboard"
	forecastScanBatchSize      = 100
)

// ForecastCache holds computed surge dashboards so the full per-medicine
// estimation pass does not rerun on every request.
type ForecastCache interface {
	GetDashboard(ctx context.Context, topN, lookbackDays int) ([]domain.SurgeForecast, bool, error)
	SetDashboard(ctx context.Context, topN, lookbackDays int, forecasts []domain.SurgeForecast) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetDashboard(ctx context.Context, topN, lookbackDays int) ([]domain.SurgeForecast, bool, error) {
	key := buildDashboardKey(topN, lookbackDays)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var forecasts []domain.SurgeForecast
	if err := json.Unmarshal(payload, &forecasts); err != nil {
		return nil, false, fmt.Errorf("decode forecast dashboard cache: %w", err)
	}

	return forecasts, true, nil
}

func (c *redisForecastCache) SetDashboard(ctx context.Context, topN, lookbackDays int, forecasts []domain.SurgeForecast) error {
	key := buildDashboardKey(topN, lookbackDays)
	payload, err := json.Marshal(forecasts)
	if err != nil {
		return fmt.Errorf("encode forecast dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastDashboardKeyPrefix, forecastScanBatchSize)
}

func (n *noopForecastCache) GetDashboard(ctx context.Context, topN, lookbackDays int) ([]domain.SurgeForecast, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetDashboard(ctx context.Context, topN, lookbackDays int, forecasts []domain.SurgeForecast) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardKey(topN, lookbackDays int) string {
	raw := fmt.Sprintf("top_n=%d|lookback_days=%d", topN, lookbackDays)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", forecastDashboardKeyPrefix, hex.EncodeToString(sum[:]))
}
