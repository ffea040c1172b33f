package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mecanix/garage-api/pkg/common"
	redisclient "github.com/mecanix/garage-api/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// Manager handles caching operations with JSON serialization
type Manager struct {
	redis *redisclient.Client
}

// NewManager creates a new cache manager
func NewManager(redis *redisclient.Client) *Manager {
	return &Manager{redis: redis}
}

// Get retrieves a cached value and unmarshals it into result.
// A missing key is reported as common.ErrNotFound.
func (m *Manager) Get(ctx context.Context, key string, result interface{}) error {
	data, err := m.redis.GetString(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return common.ErrNotFound
		}
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// Set marshals and caches a value with expiration
func (m *Manager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return m.redis.SetWithExpiration(ctx, key, string(data), ttl)
}

// Delete removes keys from cache
func (m *Manager) Delete(ctx context.Context, keys ...string) error {
	return m.redis.Delete(ctx, keys...)
}

// CacheKeys defines common cache key patterns
type CacheKeys struct{}

var Keys = CacheKeys{}

// Dashboard returns the cache key for the ranked maintenance dashboard
func (k CacheKeys) Dashboard(limit int) string {
	return fmt.Sprintf("dashboard:forecasts:%d", limit)
}

// VehicleForecasts returns the cache key for a single vehicle's forecasts
func (k CacheKeys) VehicleForecasts(vehicleID string) string {
	return fmt.Sprintf("forecasts:vehicle:%s", vehicleID)
}
