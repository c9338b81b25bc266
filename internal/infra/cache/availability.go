package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of *redis.Client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// AvailabilityCache keeps availability views for display. Redis failures are logged
// and treated as misses.
//
// Views are stored under the generation current when the reader started loading.
// Invalidate bumps the generation, so a view loaded before a booking committed but
// written after its invalidation lands on a key no reader asks for.
type AvailabilityCache struct {
	client  Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewAvailabilityCache(client Client, ttl time.Duration, m *metrics.Metrics) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, metrics: m}
}

// The generation key outlives every view written under it.
const generationGrace = time.Hour

func generationKey(resourceID uuid.UUID, date string) string {
	return fmt.Sprintf("availability:gen:%s:%s", resourceID, date)
}

func availabilityKey(resourceID uuid.UUID, date string, gen int64) string {
	return fmt.Sprintf("availability:%s:%s:%d", resourceID, date, gen)
}

// Get returns the cached view if any, and the generation a freshly loaded view must be stored under.
// A negative generation means the cache is unavailable and Set will skip the write.
func (c *AvailabilityCache) Get(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) (*queries.AvailabilityView, int64, bool) {
	const op = "cache.AvailabilityCache.Get"

	gen, err := c.client.Get(ctx, generationKey(resourceID, date.String())).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("availability cache read failed", "op", op, "error", err)
		c.metrics.AvailabilityCache.WithLabelValues("error").Inc()
		return nil, -1, false
	}

	data, err := c.client.Get(ctx, availabilityKey(resourceID, date.String(), gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("availability cache read failed", "op", op, "error", err)
			c.metrics.AvailabilityCache.WithLabelValues("error").Inc()
			return nil, -1, false
		}
		c.metrics.AvailabilityCache.WithLabelValues("miss").Inc()
		return nil, gen, false
	}

	var view queries.AvailabilityView
	if err := json.Unmarshal(data, &view); err != nil {
		slog.Warn("availability cache entry is corrupt", "op", op, "error", err)
		c.metrics.AvailabilityCache.WithLabelValues("error").Inc()
		return nil, gen, false
	}
	c.metrics.AvailabilityCache.WithLabelValues("hit").Inc()
	return &view, gen, true
}

func (c *AvailabilityCache) Set(ctx context.Context, view *queries.AvailabilityView, gen int64) {
	const op = "cache.AvailabilityCache.Set"
	if gen < 0 {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		slog.Warn("availability view not cacheable", "op", op, "error", err)
		return
	}
	if err := c.client.Set(ctx, availabilityKey(view.ResourceID, view.Date, gen), data, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "op", op, "error", err)
	}
}

// Invalidate retires every view stored for the day. Old entries expire on their own TTL.
func (c *AvailabilityCache) Invalidate(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) {
	const op = "cache.AvailabilityCache.Invalidate"

	key := generationKey(resourceID, date.String())
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		slog.Warn("availability cache invalidation failed", "op", op, "resource_id", resourceID, "date", date.String(), "error", err)
		return
	}
	if err := c.client.Expire(ctx, key, c.ttl+generationGrace).Err(); err != nil {
		slog.Warn("availability generation expiry not set", "op", op, "key", key, "error", err)
	}
}

// Noop is used when REDIS_ADDR is empty.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, reservation.BookingDate) (*queries.AvailabilityView, int64, bool) {
	return nil, -1, false
}

func (Noop) Set(context.Context, *queries.AvailabilityView, int64) {}

func (Noop) Invalidate(context.Context, uuid.UUID, reservation.BookingDate) {}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
