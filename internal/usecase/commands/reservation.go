package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/pkg/obs"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const createReservationEndpoint = "POST /api/reservations"

type CreateReservationInput struct {
	ResourceID uuid.UUID
	Date       reservation.BookingDate
	Slots      []int
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	IsReplayed    bool
}

type AcceptReservationResult struct {
	ReservationID uuid.UUID
	Charge        money.Money
	Balance       money.Money
}

// AvailabilityInvalidator drops cached availability after slots are taken or released.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate)
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	Accept(ctx context.Context, reservationID, operatorID uuid.UUID) (*AcceptReservationResult, error)
	Reject(ctx context.Context, reservationID, operatorID uuid.UUID) error
	Delete(ctx context.Context, reservationID, operatorID uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *reservation.Factory
	settlement     *Settlement
	invalidator    AvailabilityInvalidator
	metrics        *metrics.Metrics
	idempotencyTTL time.Duration
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	settlement *Settlement,
	invalidator AvailabilityInvalidator,
	m *metrics.Metrics,
	idempotencyTTL time.Duration,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:            uow,
		factory:        factory,
		settlement:     settlement,
		invalidator:    invalidator,
		metrics:        m,
		idempotencyTTL: idempotencyTTL,
	}
}

func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	in CreateReservationInput,
	userID uuid.UUID,
	idempotencyKey *uuid.UUID,
) (result *CreateReservationResult, err error) {
	ctx, span := obs.Tracer().Start(ctx, "ReservationCommands.Create", trace.WithAttributes(
		attribute.String("resource.id", in.ResourceID.String()),
		attribute.String("booking.date", in.Date.String()),
	))
	defer func() { obs.End(span, err) }()

	requestHash := hashCreateInput(in)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		now := c.factory.Clock().Now()

		if idempotencyKey != nil {
			replay, ierr := c.claimIdempotencyKey(ctx, tx, *idempotencyKey, userID, requestHash, now)
			if ierr != nil || replay != nil {
				result = replay
				return ierr
			}
		}

		res, rerr := tx.Reads().ResourceByID(ctx, in.ResourceID)
		if rerr != nil {
			return translate(rerr, ErrResourceNotFound)
		}

		if lerr := tx.LockResourceDay(ctx, in.ResourceID, in.Date); lerr != nil {
			return translate(lerr, nil)
		}

		ranges, rerr := tx.Reads().ActiveRangesOn(ctx, in.ResourceID, in.Date)
		if rerr != nil {
			return rerr
		}

		created, derr := c.factory.CreateReservation(
			reservation.ResourceSpec{ID: res.ID(), HourlyRate: res.HourlyRate()},
			userID,
			in.Date,
			in.Slots,
			reservation.BuildAvailability(in.Date, ranges),
		)
		if derr != nil {
			return derr
		}

		if cerr := tx.Reservations().Create(ctx, created); cerr != nil {
			if infra.IsKind(cerr, infra.KindForeignKeyViolated) {
				return errs.Mark(cerr, ErrResourceNotFound)
			}
			return translate(cerr, nil)
		}

		if eerr := enqueue(ctx, tx, shared.TopicReservationCreated, reservationEvent(created, nil, now), now); eerr != nil {
			return eerr
		}

		if idempotencyKey != nil {
			if ierr := tx.Idempotency().Complete(ctx, *idempotencyKey, userID, created.ID()); ierr != nil {
				return ierr
			}
		}

		result = &CreateReservationResult{ReservationID: created.ID()}
		return nil
	})
	if err != nil {
		return nil, c.observeFailure("create", translate(err, nil))
	}

	if !result.IsReplayed {
		c.invalidator.Invalidate(ctx, in.ResourceID, in.Date)
		slog.InfoContext(ctx, "reservation created",
			"reservation_id", result.ReservationID,
			"resource_id", in.ResourceID,
			"user_id", userID,
			"date", in.Date.String())
	}
	return result, nil
}

// claimIdempotencyKey returns a replay result when the key already completed with the same request.
func (c *reservationCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*CreateReservationResult, error) {
	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, createReservationEndpoint, requestHash, now.Add(c.idempotencyTTL), now)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if existing.Status != shared.IdempotencyCompleted || existing.ResultReservationID == nil {
		return nil, ErrIdempotencyInFlight
	}
	return &CreateReservationResult{ReservationID: *existing.ResultReservationID, IsReplayed: true}, nil
}

func (c *reservationCommandsImpl) Accept(ctx context.Context, reservationID, operatorID uuid.UUID) (result *AcceptReservationResult, err error) {
	ctx, span := obs.Tracer().Start(ctx, "ReservationCommands.Accept", trace.WithAttributes(
		attribute.String("reservation.id", reservationID.String()),
	))
	defer func() { obs.End(span, err) }()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, rerr := tx.Reads().ReservationForUpdate(ctx, reservationID)
		if rerr != nil {
			return translate(rerr, ErrReservationNotFound)
		}

		now := c.factory.Clock().Now()
		if derr := res.Accept(now); derr != nil {
			return derr
		}

		balance, serr := c.settlement.Settle(ctx, tx, res.UserID(), res.Charge(), res.ID(), now)
		if serr != nil {
			return serr
		}

		ok, terr := tx.Reservations().TransitionStatus(ctx, res.ID(), reservation.StatusPending, reservation.StatusAccepted, now)
		if terr != nil && infra.IsRetryable(terr) {
			return terr
		}
		if terr != nil || !ok {
			return c.reconciliationFailure(ctx, res, terr)
		}

		if eerr := enqueue(ctx, tx, shared.TopicReservationAccepted, reservationEvent(res, &operatorID, now), now); eerr != nil {
			return eerr
		}

		result = &AcceptReservationResult{
			ReservationID: res.ID(),
			Charge:        res.Charge(),
			Balance:       balance,
		}
		return nil
	})
	if err != nil {
		c.metrics.Settlements.WithLabelValues(settlementOutcome(err)).Inc()
		return nil, c.observeFailure("accept", translate(err, nil))
	}

	c.metrics.Settlements.WithLabelValues("accepted").Inc()
	slog.InfoContext(ctx, "reservation accepted",
		"reservation_id", reservationID,
		"operator_id", operatorID,
		"charge", result.Charge.String(),
		"balance", result.Balance.String())
	return result, nil
}

// reconciliationFailure is reached when the wallet was debited but the reservation did not
// leave pending. Returning an error rolls the debit back with the rest of the transaction.
func (c *reservationCommandsImpl) reconciliationFailure(ctx context.Context, res *reservation.Reservation, cause error) error {
	c.metrics.ReconciliationErrors.Inc()
	slog.ErrorContext(ctx, "settlement debited wallet but status transition failed; rolling back",
		"reservation_id", res.ID(),
		"user_id", res.UserID(),
		"amount", res.Charge().String(),
		"error", cause)

	if cause == nil {
		return errs.Wrapf(ErrReconciliation, "reservation %s left pending after debit", res.ID())
	}
	return errs.Mark(cause, ErrReconciliation)
}

func (c *reservationCommandsImpl) Reject(ctx context.Context, reservationID, operatorID uuid.UUID) (err error) {
	ctx, span := obs.Tracer().Start(ctx, "ReservationCommands.Reject", trace.WithAttributes(
		attribute.String("reservation.id", reservationID.String()),
	))
	defer func() { obs.End(span, err) }()

	var released reservation.BookedRange
	var resourceID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, rerr := tx.Reads().ReservationForUpdate(ctx, reservationID)
		if rerr != nil {
			return translate(rerr, ErrReservationNotFound)
		}

		now := c.factory.Clock().Now()
		if derr := res.Reject(now); derr != nil {
			return derr
		}

		ok, terr := tx.Reservations().TransitionStatus(ctx, res.ID(), reservation.StatusPending, reservation.StatusRejected, now)
		if terr != nil {
			return terr
		}
		if !ok {
			return reservation.ErrAlreadyFinalized
		}

		released, resourceID = res.BookedRange(), res.ResourceID()
		return enqueue(ctx, tx, shared.TopicReservationRejected, reservationEvent(res, &operatorID, now), now)
	})
	if err != nil {
		return c.observeFailure("reject", translate(err, nil))
	}

	c.invalidator.Invalidate(ctx, resourceID, released.Date)
	slog.InfoContext(ctx, "reservation rejected", "reservation_id", reservationID, "operator_id", operatorID)
	return nil
}

// Delete removes the record whatever its status. A debit already applied is not reversed.
func (c *reservationCommandsImpl) Delete(ctx context.Context, reservationID, operatorID uuid.UUID) (err error) {
	ctx, span := obs.Tracer().Start(ctx, "ReservationCommands.Delete", trace.WithAttributes(
		attribute.String("reservation.id", reservationID.String()),
	))
	defer func() { obs.End(span, err) }()

	var deleted *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, rerr := tx.Reads().ReservationForUpdate(ctx, reservationID)
		if rerr != nil {
			return translate(rerr, ErrReservationNotFound)
		}

		ok, derr := tx.Reservations().Delete(ctx, res.ID())
		if derr != nil {
			return derr
		}
		if !ok {
			return ErrReservationNotFound
		}

		deleted = res
		now := c.factory.Clock().Now()
		return enqueue(ctx, tx, shared.TopicReservationDeleted, reservationEvent(res, &operatorID, now), now)
	})
	if err != nil {
		return c.observeFailure("delete", translate(err, nil))
	}

	c.invalidator.Invalidate(ctx, deleted.ResourceID(), deleted.Date())
	slog.InfoContext(ctx, "reservation deleted",
		"reservation_id", reservationID,
		"operator_id", operatorID,
		"status", deleted.Status().String())
	return nil
}

func (c *reservationCommandsImpl) observeFailure(operation string, err error) error {
	if errs.Is(err, ErrConflict) {
		c.metrics.Conflicts.WithLabelValues(operation).Inc()
	}
	return err
}

func settlementOutcome(err error) string {
	switch {
	case errs.Is(err, ErrReconciliation):
		return "reconciliation_error"
	case errs.Is(err, wallet.ErrInsufficientFunds):
		return "insufficient_funds"
	case errs.Is(err, wallet.ErrWalletNotFound):
		return "wallet_not_found"
	case errs.Is(err, reservation.ErrAlreadyFinalized):
		return "already_finalized"
	default:
		return "error"
	}
}

func hashCreateInput(in CreateReservationInput) string {
	slots := slices.Clone(in.Slots)
	slices.Sort(slots)
	data, _ := json.Marshal(struct {
		ResourceID uuid.UUID `json:"resource_id"`
		Date       string    `json:"date"`
		Slots      []int     `json:"slots"`
	}{in.ResourceID, in.Date.String(), slots})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
