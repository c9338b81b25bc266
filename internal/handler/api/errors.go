package api

import (
	"errors"
	"net/http"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/handler/httperr"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const retryAfterSeconds = "1"

type errorMapping struct {
	targets []error
	status  int
	code    string
	message string
	retry   bool
}

// Order matters: marked use-case errors are checked before the domain errors they may wrap.
var errorMappings = []errorMapping{
	{targets: []error{commands.ErrReconciliation}, status: http.StatusInternalServerError, code: "RECONCILIATION_ERROR", message: "Settlement could not be reconciled"},
	{targets: []error{commands.ErrConflict}, status: http.StatusConflict, code: "CONFLICT", message: "Concurrent update, please retry", retry: true},
	{targets: []error{commands.ErrIdempotencyInFlight}, status: http.StatusConflict, code: "IDEMPOTENCY_IN_FLIGHT", message: "Request with this idempotency key is still in progress", retry: true},
	{targets: []error{commands.ErrIdempotencyKeyReused}, status: http.StatusConflict, code: "IDEMPOTENCY_KEY_REUSED", message: "Idempotency key reused with a different request"},
	{targets: []error{commands.ErrResourceNotFound, queries.ErrResourceNotFound}, status: http.StatusNotFound, code: "RESOURCE_NOT_FOUND", message: "Resource not found"},
	{targets: []error{commands.ErrResourceInUse}, status: http.StatusConflict, code: "RESOURCE_IN_USE", message: "Field has upcoming reservations"},
	{targets: []error{commands.ErrReservationNotFound, queries.ErrReservationNotFound}, status: http.StatusNotFound, code: "RESERVATION_NOT_FOUND", message: "Reservation not found"},
	{targets: []error{commands.ErrDepositNotFound}, status: http.StatusNotFound, code: "DEPOSIT_NOT_FOUND", message: "Deposit not found"},
	{targets: []error{wallet.ErrWalletNotFound, queries.ErrWalletNotFound}, status: http.StatusNotFound, code: "WALLET_NOT_FOUND", message: "Wallet not found"},
	{targets: []error{reservation.ErrPastDate}, status: http.StatusUnprocessableEntity, code: "PAST_DATE", message: "Date is before today"},
	{targets: []error{reservation.ErrIncompleteSelection}, status: http.StatusUnprocessableEntity, code: "INCOMPLETE_SELECTION", message: "Select a start and an end slot"},
	{targets: []error{reservation.ErrTooManySlots}, status: http.StatusUnprocessableEntity, code: "TOO_MANY_SLOTS", message: "Select at most two slots"},
	{targets: []error{reservation.ErrInvalidHour, reservation.ErrInvalidInterval, reservation.ErrInvalidDate}, status: http.StatusBadRequest, code: "INVALID_SLOT", message: "Invalid slot"},
	{targets: []error{reservation.ErrAlreadyFinalized}, status: http.StatusConflict, code: "ALREADY_FINALIZED", message: "Reservation is already finalized"},
	{targets: []error{wallet.ErrInsufficientFunds}, status: http.StatusUnprocessableEntity, code: "INSUFFICIENT_FUNDS", message: "Insufficient wallet balance"},
	{targets: []error{wallet.ErrDepositAlreadyConfirmed}, status: http.StatusConflict, code: "DEPOSIT_ALREADY_CONFIRMED", message: "Deposit is already confirmed"},
	{targets: []error{wallet.ErrDepositBelowMinimum}, status: http.StatusUnprocessableEntity, code: "DEPOSIT_BELOW_MINIMUM", message: "Deposit is below the minimum amount"},
	{targets: []error{wallet.ErrNonPositiveAmount, money.ErrNegativeAmount, money.ErrTooPrecise, money.ErrInvalidAmount, resource.ErrNonPositiveRate}, status: http.StatusBadRequest, code: "INVALID_AMOUNT", message: "Invalid amount"},
	{targets: []error{resource.ErrEmptyResourceName, resource.ErrResourceNameTooLong, resource.ErrInvalidCapacity}, status: http.StatusBadRequest, code: "INVALID_RESOURCE", message: "Invalid resource"},
	{targets: []error{queries.ErrInvalidCursor}, status: http.StatusBadRequest, code: "INVALID_CURSOR", message: "Invalid cursor"},
}

// respondError writes the mapped error response; anything unmapped is a 500.
func respondError(c *gin.Context, err error) {
	var conflict *reservation.SlotConflictError
	if errs.As(err, &conflict) {
		resp := httperr.New(http.StatusConflict, "SLOT_CONFLICT", conflict.Error())
		resp.Detail = gin.H{"slot": conflict.Slot.String()}
		httperr.AbortWithError(c, err, resp)
		return
	}

	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errs.Is(err, target) {
				if m.retry {
					c.Header("Retry-After", retryAfterSeconds)
				}
				httperr.AbortWithError(c, err, httperr.New(m.status, m.code, m.message))
				return
			}
		}
	}

	httperr.AbortWithError(c, err, httperr.New(http.StatusInternalServerError, "INTERNAL", "Internal server error"))
}

// respondBindError reports a request that failed binding. A bad clock label is an INVALID_SLOT.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "clockhour" {
				httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, "INVALID_SLOT", "Invalid slot"))
				return
			}
		}
	}
	httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format"))
}

var errMissingUser = errors.New("authenticated user missing from context")

func respondMissingUser(c *gin.Context) {
	httperr.AbortWithError(c, errMissingUser, httperr.New(http.StatusInternalServerError, "INTERNAL", "Internal server error"))
}

func respondInvalidID(c *gin.Context, err error) {
	httperr.AbortWithError(c, err, httperr.New(http.StatusBadRequest, "INVALID_ID", "Invalid id format"))
}
