//go:build unit

package cache_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/infra/cache"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(string(f.data[key]), 10, 64)
	n++
	f.data[key] = []byte(strconv.FormatInt(n, 10))
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	date := reservation.NewBookingDate(2025, time.March, 11)
	resourceID := uuid.New()
	view := &queries.AvailabilityView{
		ResourceID: resourceID,
		Date:       date.String(),
		Booked:     []string{"14:00", "15:00"},
		Free:       []string{"00:00"},
	}

	t.Run("miss then hit after set", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		rdb := newFakeRedis()
		c := cache.NewAvailabilityCache(rdb, 30*time.Second, m)

		_, gen, ok := c.Get(ctx, resourceID, date)
		assert.False(t, ok)
		assert.Equal(t, int64(0), gen)

		c.Set(ctx, view, gen)
		got, _, ok := c.Get(ctx, resourceID, date)
		require.True(t, ok)
		assert.Equal(t, view, got)
		assert.Equal(t, 30*time.Second, rdb.ttls["availability:"+resourceID.String()+":2025-03-11:0"])

		assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityCache.WithLabelValues("miss")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityCache.WithLabelValues("hit")))
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		rdb := newFakeRedis()
		c := cache.NewAvailabilityCache(rdb, time.Minute, metrics.New(prometheus.NewRegistry()))
		_, gen, _ := c.Get(ctx, resourceID, date)
		c.Set(ctx, view, gen)

		c.Invalidate(ctx, resourceID, date)

		_, next, ok := c.Get(ctx, resourceID, date)
		assert.False(t, ok)
		assert.Equal(t, gen+1, next)
		assert.Equal(t, time.Minute+time.Hour, rdb.ttls["availability:gen:"+resourceID.String()+":2025-03-11"])
	})

	t.Run("a view loaded before an invalidation is never served after it", func(t *testing.T) {
		c := cache.NewAvailabilityCache(newFakeRedis(), time.Minute, metrics.New(prometheus.NewRegistry()))
		_, gen, ok := c.Get(ctx, resourceID, date)
		require.False(t, ok)

		// A booking commits and invalidates while the reader is still loading.
		c.Invalidate(ctx, resourceID, date)
		c.Set(ctx, view, gen)

		_, _, ok = c.Get(ctx, resourceID, date)
		assert.False(t, ok)
	})

	t.Run("redis errors read as a miss", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		rdb := newFakeRedis()
		rdb.failGet = errors.New("connection refused")
		c := cache.NewAvailabilityCache(rdb, time.Minute, m)

		_, gen, ok := c.Get(ctx, resourceID, date)
		assert.False(t, ok)
		assert.Negative(t, gen)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityCache.WithLabelValues("error")))
	})

	t.Run("corrupt entries read as a miss", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.data["availability:"+resourceID.String()+":2025-03-11:0"] = []byte("{not json")
		c := cache.NewAvailabilityCache(rdb, time.Minute, metrics.New(prometheus.NewRegistry()))

		_, _, ok := c.Get(ctx, resourceID, date)
		assert.False(t, ok)
	})
}

func TestNoop(t *testing.T) {
	var c cache.Noop
	c.Set(context.Background(), &queries.AvailabilityView{}, 0)
	_, _, ok := c.Get(context.Background(), uuid.New(), reservation.NewBookingDate(2025, time.March, 11))
	assert.False(t, ok)
}
