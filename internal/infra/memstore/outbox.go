package memstore

import (
	"context"
	"sort"
	"time"

	"field-rental/internal/infra"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// OutboxStore hands queued notification jobs to the relay.
type OutboxStore struct{ s *Store }

func NewOutboxStore(s *Store) *OutboxStore {
	return &OutboxStore{s: s}
}

// ClaimDue leases up to limit due jobs. A job whose lease runs out before it is
// marked becomes claimable again.
func (o *OutboxStore) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]shared.OutboxJob, error) {
	var claimed []shared.OutboxJob
	err := o.s.atomically(ctx, func(st *state) error {
		var due []jobRow
		for _, j := range st.jobs {
			if j.runAt.After(now) {
				continue
			}
			if j.status == shared.OutboxQueued || j.status == shared.OutboxProcessing {
				due = append(due, j)
			}
		}
		sort.Slice(due, func(i, k int) bool {
			if !due[i].runAt.Equal(due[k].runAt) {
				return due[i].runAt.Before(due[k].runAt)
			}
			return due[i].createdAt.Before(due[k].createdAt)
		})
		if len(due) > limit {
			due = due[:limit]
		}

		for _, j := range due {
			j.status = shared.OutboxProcessing
			j.attempts++
			j.runAt = pgTime(now.Add(lease))
			st.jobs[j.id] = j
			claimed = append(claimed, shared.OutboxJob{
				ID:       j.id,
				Topic:    j.topic,
				Payload:  j.payload,
				Attempts: j.attempts,
				RunAt:    j.runAt,
			})
		}
		return nil
	})
	return claimed, err
}

func (o *OutboxStore) MarkSent(ctx context.Context, id uuid.UUID, _ time.Time) error {
	return o.s.atomically(ctx, func(st *state) error {
		j, ok := st.jobs[id]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "notification job not found")
		}
		j.status = shared.OutboxSent
		j.lastError = ""
		st.jobs[id] = j
		return nil
	})
}

// MarkFailed requeues the job at retryAt, or parks it as failed when retryAt is nil.
func (o *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt *time.Time) error {
	return o.s.atomically(ctx, func(st *state) error {
		j, ok := st.jobs[id]
		if !ok {
			return infra.NewRepoErr(infra.KindNotFound, "notification job not found")
		}
		j.lastError = reason
		if retryAt == nil {
			j.status = shared.OutboxFailed
		} else {
			j.status = shared.OutboxQueued
			j.runAt = pgTime(*retryAt)
		}
		st.jobs[id] = j
		return nil
	})
}

// Status is exposed for tests and diagnostics.
func (o *OutboxStore) Status(id uuid.UUID) (shared.OutboxStatus, bool) {
	var (
		status shared.OutboxStatus
		ok     bool
	)
	o.s.read(func(st *state) {
		var j jobRow
		if j, ok = st.jobs[id]; ok {
			status = j.status
		}
	})
	return status, ok
}
