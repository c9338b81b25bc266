//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/user"
	resdto "field-rental/internal/handler/dto/response"
	"field-rental/tests/common/dbtest"
	"field-rental/tests/common/httptest"
	"field-rental/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	acceptURL       = "/api/admin/reservations/%s/accept"
	rejectURL       = "/api/admin/reservations/%s/reject"
	availabilityURL = "/api/resources/%s/availability?date=%s"
	walletURL       = "/api/wallet"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func tomorrow() string {
	return reservation.DateOf(time.Now(), time.UTC).AddDays(1).String()
}

func (s *BookingSuite) createReservation(token string, resourceID uuid.UUID, date string, slots ...string) *resdto.ReservationResponse {
	t := s.T()
	body := map[string]any{"resource_id": resourceID, "date": date, "slots": slots}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
	var created resdto.ReservationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return &created
}

// =============================================================================
// Creating reservations
// =============================================================================

func (s *BookingSuite) TestCreateReservation() {
	s.Run("creates a pending reservation charged at the current rate", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch A", "200000")
		userID, token := s.Auth.Customer(t)
		date := tomorrow()

		got := s.createReservation(token, resourceID, date, "16:00", "14:00")

		want := &resdto.ReservationResponse{
			ResourceID:   resourceID,
			ResourceName: "Pitch A",
			UserID:       userID,
			Date:         date,
			StartTime:    "14:00",
			EndTime:      "16:00",
			Hours:        2,
			Charge:       "400000.00",
			Status:       "pending",
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(resdto.ReservationResponse{}, "ID", "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("reservation mismatch (-want +got):\n%s", diff)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, resourceID, date), nil, "")
		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.Equal(t, []string{"14:00", "15:00"}, avail.Booked)
		require.Len(t, avail.Free, 22)
	})

	s.Run("rejects a range that overlaps an accepted reservation at its first booked slot", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch B", "200000")
		date := tomorrow()
		dbtest.CreateTestReservation(t, s.DB, resourceID, uuid.New(), date, 15, 17, "400000", "accepted")
		_, token := s.Auth.Customer(t)

		body := map[string]any{"resource_id": resourceID, "date": date, "slots": []string{"14:00", "16:00"}}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)

		resp := httptest.AssertErrorCode(t, w, http.StatusConflict, "SLOT_CONFLICT")
		require.Equal(t, date+" 15:00", resp.Detail["slot"])
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "resource_id = $1", resourceID))
	})

	s.Run("a rejected reservation frees its slots", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch C", "150000")
		date := tomorrow()
		dbtest.CreateTestReservation(t, s.DB, resourceID, uuid.New(), date, 15, 17, "300000", "rejected")
		_, token := s.Auth.Customer(t)

		got := s.createReservation(token, resourceID, date, "15:00", "17:00")
		require.Equal(t, "300000.00", got.Charge)
	})

	s.Run("rejects selections the booking rules forbid", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch D", "100000")
		_, token := s.Auth.Customer(t)
		yesterday := reservation.DateOf(time.Now(), time.UTC).AddDays(-1).String()

		cases := []struct {
			name   string
			date   string
			slots  []string
			status int
			code   string
		}{
			{name: "past date", date: yesterday, slots: []string{"10:00", "12:00"}, status: http.StatusUnprocessableEntity, code: "PAST_DATE"},
			{name: "one slot", date: tomorrow(), slots: []string{"10:00"}, status: http.StatusUnprocessableEntity, code: "INCOMPLETE_SELECTION"},
			{name: "same slot twice", date: tomorrow(), slots: []string{"10:00", "10:00"}, status: http.StatusUnprocessableEntity, code: "INCOMPLETE_SELECTION"},
			{name: "three slots", date: tomorrow(), slots: []string{"10:00", "11:00", "12:00"}, status: http.StatusUnprocessableEntity, code: "TOO_MANY_SLOTS"},
			{name: "half hour", date: tomorrow(), slots: []string{"10:30", "12:00"}, status: http.StatusBadRequest, code: "INVALID_SLOT"},
		}
		for _, tc := range cases {
			body := map[string]any{"resource_id": resourceID, "date": tc.date, "slots": tc.slots}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
			httptest.AssertErrorCode(t, w, tc.status, tc.code)
		}
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "reservations", "resource_id = $1", resourceID))
	})

	s.Run("replays an idempotent create", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch E", "100000")
		_, token := s.Auth.Customer(t)
		key := uuid.NewString()
		body := map[string]any{"resource_id": resourceID, "date": tomorrow(), "slots": []string{"08:00", "10:00"}}
		headers := map[string]string{"Idempotency-Key": key}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, token, headers)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, token, headers)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())
		require.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "resource_id = $1", resourceID))
	})

	s.Run("only one of two concurrent overlapping creates succeeds", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch F", "100000")
		date := tomorrow()

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			_, token := s.Auth.Customer(t)
			wg.Add(1)
			go func() {
				defer wg.Done()
				body := map[string]any{"resource_id": resourceID, "date": date, "slots": []string{"18:00", "20:00"}}
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token).Code
			}()
		}
		wg.Wait()

		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "resource_id = $1", resourceID))
	})
}

// =============================================================================
// Settlement
// =============================================================================

func (s *BookingSuite) TestAcceptReservation() {
	s.Run("debits the wallet and accepts", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch G", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "500000")
		created := s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)

		var accepted resdto.AcceptReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
		require.Equal(t, "accepted", accepted.Status)
		require.Equal(t, "400000.00", accepted.Charge)
		require.Equal(t, "100000.00", accepted.Balance)
		require.Equal(t, "100000.00", dbtest.WalletBalance(t, s.DB, userID))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "wallet_entries", "reservation_id = $1 AND kind = 'debit'", created.ID))
	})

	s.Run("insufficient funds leaves reservation and balance untouched", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch H", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "100000")
		created := s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)

		httptest.AssertErrorCode(t, w, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS")
		require.Equal(t, "pending", dbtest.ReservationStatus(t, s.DB, created.ID))
		require.Equal(t, "100000.00", dbtest.WalletBalance(t, s.DB, userID))
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "wallet_entries", "user_id = $1", userID))
	})

	s.Run("no wallet", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch I", "200000")
		_, token := s.Auth.Customer(t)
		created := s.createReservation(token, resourceID, tomorrow(), "10:00", "11:00")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)

		httptest.AssertErrorCode(t, w, http.StatusNotFound, "WALLET_NOT_FOUND")
		require.Equal(t, "pending", dbtest.ReservationStatus(t, s.DB, created.ID))
	})

	s.Run("concurrent accepts debit exactly once", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch J", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "1000000")
		created := s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00")

		type outcome struct {
			status int
			code   string
		}
		outcomes := make([]outcome, 2)
		var wg sync.WaitGroup
		for i := range outcomes {
			_, opToken := s.Auth.Operator(t)
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)
				o := outcome{status: w.Code}
				if w.Code != http.StatusOK {
					o.code = httptest.DecodeJSON[httptest.ErrorBody](t, w).Error.Code
				}
				outcomes[i] = o
			}()
		}
		wg.Wait()

		require.ElementsMatch(t, []outcome{
			{status: http.StatusOK},
			{status: http.StatusConflict, code: "ALREADY_FINALIZED"},
		}, outcomes)
		require.Equal(t, "accepted", dbtest.ReservationStatus(t, s.DB, created.ID))
		require.Equal(t, "600000.00", dbtest.WalletBalance(t, s.DB, userID))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "wallet_entries", "reservation_id = $1 AND kind = 'debit'", created.ID))
	})

	s.Run("concurrent accepts of two reservations settle only what the wallet covers", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch K", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "500000")
		ids := []uuid.UUID{
			s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00").ID,
			s.createReservation(token, resourceID, tomorrow(), "18:00", "20:00").ID,
		}

		codes := make([]string, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			_, opToken := s.Auth.Operator(t)
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, id), nil, opToken)
				if w.Code == http.StatusOK {
					codes[i] = "OK"
					return
				}
				codes[i] = httptest.DecodeJSON[httptest.ErrorBody](t, w).Error.Code
			}()
		}
		wg.Wait()

		require.ElementsMatch(t, []string{"OK", "INSUFFICIENT_FUNDS"}, codes)
		loser := ids[0]
		if codes[0] == "OK" {
			loser = ids[1]
		}
		require.Equal(t, "pending", dbtest.ReservationStatus(t, s.DB, loser))
		require.Equal(t, "100000.00", dbtest.WalletBalance(t, s.DB, userID))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "wallet_entries", "user_id = $1 AND kind = 'debit'", userID))
	})

	s.Run("accept after reject is refused", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch K", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "1000000")
		created := s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rejectURL, created.ID), nil, opToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "ALREADY_FINALIZED")
		require.Equal(t, "1000000.00", dbtest.WalletBalance(t, s.DB, userID))
	})

	s.Run("customers cannot accept", func() {
		t := s.T()
		_, token := s.Auth.Customer(t)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, uuid.New()), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN")
	})

	s.Run("expired operator session", func() {
		t := s.T()
		token := s.Auth.CreateExpiredToken(t, uuid.New(), user.RoleOperator)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, uuid.New()), nil, token)
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "TOKEN_EXPIRED")
	})
}

// =============================================================================
// Pricing
// =============================================================================

func (s *BookingSuite) TestRateChangeKeepsStoredCharge() {
	s.Run("accept debits the charge fixed at creation", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch L", "200000")
		userID, token := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "1000000")
		created := s.createReservation(token, resourceID, tomorrow(), "14:00", "16:00")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, "/api/admin/resources/"+resourceID.String(),
			map[string]any{"hourly_rate": "300000"}, opToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID), nil, opToken)
		var accepted resdto.AcceptReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
		require.Equal(t, "400000.00", accepted.Charge)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, walletURL, nil, token)
		var wallet resdto.WalletResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &wallet)
		require.Equal(t, "600000.00", wallet.Balance)
	})
}

// =============================================================================
// Resource removal
// =============================================================================

func (s *BookingSuite) TestDeleteResource() {
	s.Run("refused while a pending booking is upcoming", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch M", "100000")
		userID, _ := s.Auth.Customer(t)
		pending := dbtest.CreateTestReservation(t, s.DB, resourceID, userID, tomorrow(), 14, 16, "200000", "pending")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/admin/resources/"+resourceID.String(), nil, opToken)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "RESOURCE_IN_USE")
		require.Equal(t, "pending", dbtest.ReservationStatus(t, s.DB, pending))
	})

	s.Run("past bookings are removed and their debits kept", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, "Pitch N", "100000")
		userID, _ := s.Auth.Customer(t)
		dbtest.CreateTestWallet(t, s.DB, userID, "1000000")
		past := reservation.DateOf(time.Now(), time.UTC).AddDays(-3).String()
		played := dbtest.CreateTestReservation(t, s.DB, resourceID, userID, past, 14, 16, "200000", "accepted")
		_, err := s.DB.Exec(context.Background(),
			`INSERT INTO wallet_entries (id, user_id, kind, amount, status, reservation_id, created_at, confirmed_at)
			 VALUES ($1, $2, 'debit', 200000, 'confirmed', $3, now(), now())`, uuid.New(), userID, played)
		require.NoError(t, err)
		dbtest.CreateTestReservation(t, s.DB, resourceID, userID, tomorrow(), 18, 20, "200000", "rejected")
		_, opToken := s.Auth.Operator(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/admin/resources/"+resourceID.String(), nil, opToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		require.Zero(t, dbtest.CountRows(t, s.DB, "resources", "id = $1", resourceID))
		require.Zero(t, dbtest.CountRows(t, s.DB, "reservations", "resource_id = $1", resourceID))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "wallet_entries", "reservation_id = $1 AND kind = 'debit'", played))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/admin/resources/"+resourceID.String(), nil, opToken)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "RESOURCE_NOT_FOUND")
	})
}
