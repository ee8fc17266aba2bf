package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// keyPrefix префикс ключей кэша доступности в Redis
const keyPrefix = "availability:tour:"

// Redis кэш доступности по турам поверх Redis
// TTL обеспечивается самим Redis (EXPIRE на ключе)
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis создает Redis-кэш доступности
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// Get возвращает закэшированную доступность тура
func (c *Redis) Get(ctx context.Context, tourSlug string) ([]domain.DateAvailability, bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+tourSlug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}

	var values []domain.DateAvailability
	if err := json.Unmarshal(payload, &values); err != nil {
		// Битая запись равносильна промаху, перезапишется при Set
		return nil, false, nil
	}

	return values, true, nil
}

// Set сохраняет доступность тура со свежим TTL
func (c *Redis) Set(ctx context.Context, tourSlug string, values []domain.DateAvailability) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("cache: marshal values: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+tourSlug, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}

	return nil
}
