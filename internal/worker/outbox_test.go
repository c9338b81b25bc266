//go:build unit

package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"field-rental/internal/infra/memstore"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/shared"
	"field-rental/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var relayNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, routingKey+" "+string(body))
	return nil
}

type relayFixture struct {
	store   *memstore.Store
	outbox  *memstore.OutboxStore
	pub     *fakePublisher
	clock   *clock.MockClock
	metrics *metrics.Metrics
	relay   *worker.Relay
}

func newRelayFixture(maxAttempts int) *relayFixture {
	store := memstore.New()
	f := &relayFixture{
		store:   store,
		outbox:  memstore.NewOutboxStore(store),
		pub:     &fakePublisher{},
		clock:   clock.NewMockClock(relayNow),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	cfg := worker.DefaultRelayConfig()
	cfg.MaxAttempts = maxAttempts
	f.relay = worker.NewRelay(f.outbox, f.pub, f.clock, f.metrics, cfg)
	return f
}

func (f *relayFixture) enqueue(t *testing.T, topic, payload string) {
	t.Helper()
	require.NoError(t, f.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().CreateJob(ctx, topic, []byte(payload), f.clock.Now())
	}))
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes due jobs once", func(t *testing.T) {
		f := newRelayFixture(3)
		f.enqueue(t, shared.TopicReservationCreated, `{"n":1}`)
		f.clock.Add(time.Millisecond)
		f.enqueue(t, shared.TopicWalletCredited, `{"n":2}`)

		n, err := f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{
			shared.TopicReservationCreated + ` {"n":1}`,
			shared.TopicWalletCredited + ` {"n":2}`,
		}, f.pub.sent)

		f.clock.Add(time.Hour)
		n, err = f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OutboxPublished.WithLabelValues(shared.TopicWalletCredited, "sent")), 0)
	})

	t.Run("failed publish is retried after backoff", func(t *testing.T) {
		f := newRelayFixture(3)
		f.enqueue(t, shared.TopicReservationAccepted, `{}`)
		f.pub.err = errors.New("channel closed")

		n, err := f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OutboxPublished.WithLabelValues(shared.TopicReservationAccepted, "retry")), 0)

		f.pub.err = nil
		n, err = f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n, "not due before the backoff elapses")

		f.clock.Add(time.Second)
		n, err = f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		f := newRelayFixture(2)
		f.enqueue(t, shared.TopicReservationDeleted, `{}`)
		f.pub.err = errors.New("unroutable")

		for range 2 {
			_, err := f.relay.RunOnce(ctx)
			require.NoError(t, err)
			f.clock.Add(time.Minute)
		}

		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.OutboxPublished.WithLabelValues(shared.TopicReservationDeleted, "failed")), 0)

		f.pub.err = nil
		f.clock.Add(time.Hour)
		n, err := f.relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, f.pub.sent)
	})
}

func TestRelay_RunStopsWithContext(t *testing.T) {
	f := newRelayFixture(3)
	f.enqueue(t, shared.TopicReservationCreated, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.relay.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		f.pub.mu.Lock()
		defer f.pub.mu.Unlock()
		return len(f.pub.sent) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
