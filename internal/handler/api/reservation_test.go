//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/user"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/handler/api"
	resdto "field-rental/internal/handler/dto/response"
	"field-rental/internal/infra"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"
	"field-rental/tests/common/builder"
	"field-rental/tests/common/httptest"
	"field-rental/tests/common/testutil"
	commandsmock "field-rental/tests/mock/commands"
	queriesmock "field-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.userID = uuid.New()

	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)
	admin := api.NewAdminReservationHandler(s.mockCommands, s.mockQueries)

	customer := s.router.Group("", fakeAuth(s.userID, user.RoleCustomer))
	customer.POST("/reservations", h.Create)
	customer.GET("/reservations", h.ListMine)
	customer.GET("/reservations/:id", h.Get)

	operator := s.router.Group("/admin", fakeAuth(s.userID, user.RoleOperator))
	operator.GET("/reservations", admin.List)
	operator.POST("/reservations/:id/accept", admin.Accept)
	operator.POST("/reservations/:id/reject", admin.Reject)
	operator.DELETE("/reservations/:id", admin.Delete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	err        error
	expectCode int
	expectErr  string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	b := builder.NewReservationBuilder().WithUserID(s.userID)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: 201 with the stored reservation", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), commands.CreateReservationInput{
				ResourceID: b.ResourceID,
				Date:       b.Date,
				Slots:      []int{b.StartHour, b.EndHour},
			}, s.userID, (*uuid.UUID)(nil)).
			Return(&commands.CreateReservationResult{ReservationID: view.ID}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("14:00", body.StartTime)
		s.Equal(b.Charge.String(), body.Charge)
	})

	s.Run("success: replay answers 200 and marks the response", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID, &key).
			Return(&commands.CreateReservationResult{ReservationID: view.ID, IsReplayed: true}, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "token",
			map[string]string{"Idempotency-Key": key.String()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: request shape", func() {
		cases := []testCaseReservation{
			{name: "missing resource", mutate: testutil.Omit("resource_id"), expectCode: http.StatusBadRequest, expectErr: "INVALID_REQUEST"},
			{name: "missing date", mutate: testutil.Omit("date"), expectCode: http.StatusBadRequest, expectErr: "INVALID_REQUEST"},
			{name: "malformed date", mutate: testutil.Field("date", "2025-13-01"), expectCode: http.StatusBadRequest, expectErr: "INVALID_REQUEST"},
			{name: "hour out of range", mutate: testutil.Field("slots", []string{"14:00", "24:00"}), expectCode: http.StatusBadRequest, expectErr: "INVALID_SLOT"},
			{name: "half hour", mutate: testutil.Field("slots", []string{"14:30", "16:00"}), expectCode: http.StatusBadRequest, expectErr: "INVALID_SLOT"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.expectErr)
			})
		}
	})

	s.Run("error: invalid idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_IDEMPOTENCY_KEY")
	})

	s.Run("error: booking rules map to codes", func() {
		slot, err := reservation.NewTimeSlot(b.Date, 15)
		s.Require().NoError(err)

		cases := []testCaseReservation{
			{name: "past date", err: reservation.ErrPastDate, expectCode: http.StatusUnprocessableEntity, expectErr: "PAST_DATE"},
			{name: "one slot", err: reservation.ErrIncompleteSelection, expectCode: http.StatusUnprocessableEntity, expectErr: "INCOMPLETE_SELECTION"},
			{name: "three slots", err: reservation.ErrTooManySlots, expectCode: http.StatusUnprocessableEntity, expectErr: "TOO_MANY_SLOTS"},
			{name: "slot taken", err: &reservation.SlotConflictError{Slot: slot}, expectCode: http.StatusConflict, expectErr: "SLOT_CONFLICT"},
			{name: "unknown resource", err: errs.Mark(errors.New("no rows"), commands.ErrResourceNotFound), expectCode: http.StatusNotFound, expectErr: "RESOURCE_NOT_FOUND"},
			{name: "key reused", err: commands.ErrIdempotencyKeyReused, expectCode: http.StatusConflict, expectErr: "IDEMPOTENCY_KEY_REUSED"},
			{name: "unexpected", err: errors.New("boom"), expectCode: http.StatusInternalServerError, expectErr: "INTERNAL"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.expectErr)
			})
		}
	})

	s.Run("error: slot conflict names the first booked slot", func() {
		slot, err := reservation.NewTimeSlot(b.Date, 15)
		s.Require().NoError(err)
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &reservation.SlotConflictError{Slot: slot})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "SLOT_CONFLICT")
		s.Equal(b.Date.String()+" 15:00", body.Detail["slot"])
	})

	s.Run("error: contention asks the client to retry", func() {
		contention := infra.NewRepoErr(infra.KindContention, "lock timeout")
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(contention, commands.ErrConflict))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "CONFLICT")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGet / TestListMine
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().WithUserID(s.userID).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), queries.Viewer{UserID: s.userID, Role: user.RoleCustomer}, view.ID).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ResourceName, body.ResourceName)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.NewString(), nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})

	s.Run("error: bad id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/nope", nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_ID")
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	views := []*queries.ReservationView{
		builder.NewReservationBuilder().WithUserID(s.userID).BuildView(),
		builder.NewReservationBuilder().WithUserID(s.userID).BuildView(),
	}

	s.Run("success: passes cursor and limit through", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, "abc", 2).
			Return(&queries.ReservationPage{Items: views, NextCursor: "next"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?cursor=abc&limit=2", nil, "token")

		var body resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Equal("next", body.NextCursor)
	})

	s.Run("error: bad cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, "zzz", 0).Return(nil, queries.ErrInvalidCursor)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?cursor=zzz", nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_CURSOR")
	})

	s.Run("error: limit above max", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?limit=500", nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

// ================================================================================
// Operator actions
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAccept() {
	id := uuid.New()
	url := "/admin/reservations/" + id.String() + "/accept"

	s.Run("success: returns charge and balance", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), id, s.userID).Return(&commands.AcceptReservationResult{
			ReservationID: id,
			Charge:        money.FromInt(400000),
			Balance:       money.FromInt(100000),
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var body resdto.AcceptReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body.Status)
		s.Equal("400000.00", body.Charge)
		s.Equal("100000.00", body.Balance)
	})

	cases := []testCaseReservation{
		{name: "insufficient funds", err: wallet.ErrInsufficientFunds, expectCode: http.StatusUnprocessableEntity, expectErr: "INSUFFICIENT_FUNDS"},
		{name: "no wallet", err: wallet.ErrWalletNotFound, expectCode: http.StatusNotFound, expectErr: "WALLET_NOT_FOUND"},
		{name: "already finalized", err: reservation.ErrAlreadyFinalized, expectCode: http.StatusConflict, expectErr: "ALREADY_FINALIZED"},
		{name: "missing", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound, expectErr: "RESERVATION_NOT_FOUND"},
		{name: "diverged", err: commands.ErrReconciliation, expectCode: http.StatusInternalServerError, expectErr: "RECONCILIATION_ERROR"},
		{name: "lost race", err: errs.Mark(errors.New("stale"), commands.ErrConflict), expectCode: http.StatusConflict, expectErr: "CONFLICT"},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().Accept(gomock.Any(), id, s.userID).Return(nil, tc.err)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
			httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.expectErr)
		})
	}
}

func (s *ReservationHandlerTestSuite) TestRejectAndDelete() {
	id := uuid.New()

	s.Run("reject: 204", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, s.userID).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/"+id.String()+"/reject", nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("reject: already finalized", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), id, s.userID).Return(reservation.ErrAlreadyFinalized)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/"+id.String()+"/reject", nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ALREADY_FINALIZED")
	})

	s.Run("delete: 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/reservations/"+id.String(), nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("delete: missing", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(commands.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/reservations/"+id.String(), nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

func (s *ReservationHandlerTestSuite) TestAdminList() {
	s.Run("filters by status", func() {
		accepted := reservation.StatusAccepted
		s.mockQueries.EXPECT().ListAll(gomock.Any(), &accepted, "", 0).
			Return(&queries.ReservationPage{Items: []*queries.ReservationView{
				builder.NewReservationBuilder().AsAccepted().BuildView(),
			}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations?status=accepted", nil, "token")

		var body resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal("accepted", body.Items[0].Status)
	})

	s.Run("rejects unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations?status=done", nil, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})
}
