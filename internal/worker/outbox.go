package worker

import (
	"context"
	"log/slog"
	"time"

	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]shared.OutboxJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkFailed requeues at retryAt, or gives up on the job when retryAt is nil.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt *time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type RelayConfig struct {
	Interval    time.Duration
	BatchSize   int
	Lease       time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		Interval:    2 * time.Second,
		BatchSize:   50,
		Lease:       30 * time.Second,
		MaxAttempts: 8,
		BaseBackoff: time.Second,
		MaxBackoff:  5 * time.Minute,
	}
}

// Relay moves queued notification jobs to the event exchange. Delivery is at least once:
// a relay that dies after publishing leaves the job to be claimed again when its lease ends.
type Relay struct {
	store   OutboxStore
	pub     Publisher
	clock   clock.Clock
	metrics *metrics.Metrics
	cfg     RelayConfig
}

func NewRelay(store OutboxStore, pub Publisher, clk clock.Clock, m *metrics.Metrics, cfg RelayConfig) *Relay {
	return &Relay{store: store, pub: pub, clock: clk, metrics: m, cfg: cfg}
}

func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			slog.Error("outbox relay pass failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce handles one batch and reports how many jobs were published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	now := r.clock.Now()
	jobs, err := r.store.ClaimDue(ctx, now, r.cfg.BatchSize, r.cfg.Lease)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range jobs {
		if perr := r.pub.Publish(ctx, job.Topic, job.Payload); perr != nil {
			r.fail(ctx, job, perr)
			continue
		}
		if merr := r.store.MarkSent(ctx, job.ID, r.clock.Now()); merr != nil {
			slog.Warn("outbox job published but not marked sent", "job_id", job.ID, "error", merr)
		}
		r.metrics.OutboxPublished.WithLabelValues(job.Topic, "sent").Inc()
		sent++
	}
	return sent, nil
}

func (r *Relay) fail(ctx context.Context, job shared.OutboxJob, cause error) {
	var retryAt *time.Time
	result := "failed"
	if job.Attempts < r.cfg.MaxAttempts {
		at := r.clock.Now().Add(r.backoff(job.Attempts))
		retryAt = &at
		result = "retry"
	}

	slog.Warn("outbox publish failed",
		"job_id", job.ID,
		"topic", job.Topic,
		"attempts", job.Attempts,
		"result", result,
		"error", cause)

	if err := r.store.MarkFailed(ctx, job.ID, cause.Error(), retryAt); err != nil {
		slog.Error("failed to record outbox failure", "job_id", job.ID, "error", err)
	}
	r.metrics.OutboxPublished.WithLabelValues(job.Topic, result).Inc()
}

func (r *Relay) backoff(attempts int) time.Duration {
	d := r.cfg.BaseBackoff
	for i := 1; i < attempts && d < r.cfg.MaxBackoff; i++ {
		d *= 2
	}
	return min(d, r.cfg.MaxBackoff)
}
