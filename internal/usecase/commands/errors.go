package commands

import (
	"field-rental/internal/infra"
	"field-rental/internal/pkg/errs"
)

var (
	ErrResourceNotFound     = errs.New("resource not found")
	ErrResourceInUse        = errs.New("resource has upcoming reservations")
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrDepositNotFound      = errs.New("deposit not found")
	ErrConflict             = errs.New("concurrent update conflict, retry")
	ErrReconciliation       = errs.New("settlement and status transition diverged")
	ErrIdempotencyKeyReused = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInFlight  = errs.New("request with this idempotency key is still in progress")
)

// translate maps repository failures onto use-case errors. notFound is used for NOT_FOUND
// and may be nil when absence cannot happen.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindContention):
		return errs.Mark(err, ErrConflict)
	default:
		return err
	}
}
