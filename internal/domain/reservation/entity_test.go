//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationEntitySuite struct {
	suite.Suite
	clock   *clock.MockClock
	factory *reservation.Factory
	spec    reservation.ResourceSpec
	today   reservation.BookingDate
}

func TestReservationEntitySuite(t *testing.T) {
	suite.Run(t, new(ReservationEntitySuite))
}

func (s *ReservationEntitySuite) SetupTest() {
	s.clock = clock.NewMockClock(time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC))
	s.factory = reservation.NewFactory(&reservation.Services{
		Clock:           s.clock,
		PriceCalculator: reservation.NewHourlyRateCalculator(),
	}, time.UTC)
	s.spec = reservation.ResourceSpec{ID: uuid.New(), HourlyRate: money.FromInt(200000)}
	s.today = reservation.NewBookingDate(2025, time.March, 10)
}

func (s *ReservationEntitySuite) newPending() *reservation.Reservation {
	r, err := s.factory.CreateReservation(s.spec, uuid.New(), s.today, []int{16, 14}, reservation.EmptyAvailability(s.today))
	s.Require().NoError(err)
	return r
}

func (s *ReservationEntitySuite) TestCreateReservation_SortsSlotsAndPricesHours() {
	userID := uuid.New()

	r, err := s.factory.CreateReservation(s.spec, userID, s.today, []int{16, 14}, reservation.EmptyAvailability(s.today))

	s.Require().NoError(err)
	s.Equal(reservation.StatusPending, r.Status())
	s.Equal(14, r.Interval().StartHour())
	s.Equal(16, r.Interval().EndHour())
	s.Equal("400000.00", r.Charge().String())
	s.Equal(userID, r.UserID())
	s.Equal(s.spec.ID, r.ResourceID())
	s.NotEqual(uuid.Nil, r.ID())
	s.Equal(s.clock.Now(), r.CreatedAt())
}

func (s *ReservationEntitySuite) TestCreateReservation_RateIsCapturedAtCreation() {
	r := s.newPending()

	s.spec.HourlyRate = money.FromInt(999)

	s.Equal("400000.00", r.Charge().String())
}

func (s *ReservationEntitySuite) TestCreateReservation_TodayFollowsLocation() {
	hcm, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	s.Require().NoError(err)
	factory := reservation.NewFactory(&reservation.Services{
		Clock:           clock.NewMockClock(time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)),
		PriceCalculator: reservation.NewHourlyRateCalculator(),
	}, hcm)

	_, err = factory.CreateReservation(s.spec, uuid.New(), s.today, []int{9, 10}, reservation.EmptyAvailability(s.today))

	s.ErrorIs(err, reservation.ErrPastDate)
}

func (s *ReservationEntitySuite) TestAccept() {
	r := s.newPending()
	later := s.clock.Now().Add(time.Minute)

	s.Require().NoError(r.Accept(later))
	s.Equal(reservation.StatusAccepted, r.Status())
	s.Equal(later, r.UpdatedAt())
	s.True(r.IsActive())

	s.ErrorIs(r.Accept(later), reservation.ErrAlreadyFinalized)
	s.ErrorIs(r.Reject(later), reservation.ErrAlreadyFinalized)
	s.Equal(reservation.StatusAccepted, r.Status())
}

func (s *ReservationEntitySuite) TestReject() {
	r := s.newPending()

	s.Require().NoError(r.Reject(s.clock.Now()))
	s.Equal(reservation.StatusRejected, r.Status())
	s.False(r.IsActive())
	s.False(r.BookedRange().Status.IsActive())

	s.ErrorIs(r.Accept(s.clock.Now()), reservation.ErrAlreadyFinalized)
}

func TestNewReservation_Invariants(t *testing.T) {
	day := reservation.NewBookingDate(2025, time.March, 10)
	interval, err := reservation.NewInterval(day, 14, 16)
	require.NoError(t, err)
	now := time.Now()

	_, err = reservation.NewReservation(uuid.Nil, uuid.New(), interval, money.FromInt(1), now)
	assert.ErrorIs(t, err, reservation.ErrMissingResource)

	_, err = reservation.NewReservation(uuid.New(), uuid.Nil, interval, money.FromInt(1), now)
	assert.ErrorIs(t, err, reservation.ErrMissingUser)

	_, err = reservation.NewReservation(uuid.New(), uuid.New(), interval, money.Zero(), now)
	assert.ErrorIs(t, err, reservation.ErrInvalidCharge)

	_, err = reservation.NewReservation(uuid.New(), uuid.New(), reservation.ValidatedInterval{}, money.FromInt(1), now)
	assert.ErrorIs(t, err, reservation.ErrInvalidInterval)
}

func TestParseStatus(t *testing.T) {
	st, err := reservation.ParseStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusAccepted, st)
	assert.True(t, st.IsFinal())

	_, err = reservation.ParseStatus("cancelled")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}
