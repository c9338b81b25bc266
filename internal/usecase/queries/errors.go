package queries

import (
	"field-rental/internal/infra"
	"field-rental/internal/pkg/errs"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrResourceNotFound    = errs.New("resource not found")
	ErrWalletNotFound      = errs.New("wallet not found")
)

func notFound(err error, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, target)
	}
	return err
}
