// Package queriesmock holds gomock doubles for the use-case query ports.
// Interfaces are declared in internal/usecase/queries.
package queriesmock

import (
	"context"
	"reflect"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

// MockReservationQueries is a mock of ReservationQueries interface.
type MockReservationQueries struct {
	ctrl     *gomock.Controller
	recorder *MockReservationQueriesMockRecorder
	isgomock struct{}
}

// MockReservationQueriesMockRecorder is the mock recorder for MockReservationQueries.
type MockReservationQueriesMockRecorder struct {
	mock *MockReservationQueries
}

// NewMockReservationQueries creates a new mock instance.
func NewMockReservationQueries(ctrl *gomock.Controller) *MockReservationQueries {
	mock := &MockReservationQueries{ctrl: ctrl}
	mock.recorder = &MockReservationQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReservationQueries) EXPECT() *MockReservationQueriesMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockReservationQueries) GetByID(ctx context.Context, viewer queries.Viewer, id uuid.UUID) (*queries.ReservationView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, viewer, id)
	ret0, _ := ret[0].(*queries.ReservationView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockReservationQueriesMockRecorder) GetByID(ctx, viewer, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockReservationQueries)(nil).GetByID), ctx, viewer, id)
}

// ListByUser mocks base method.
func (m *MockReservationQueries) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*queries.ReservationPage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByUser", ctx, userID, cursor, limit)
	ret0, _ := ret[0].(*queries.ReservationPage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByUser indicates an expected call of ListByUser.
func (mr *MockReservationQueriesMockRecorder) ListByUser(ctx, userID, cursor, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByUser", reflect.TypeOf((*MockReservationQueries)(nil).ListByUser), ctx, userID, cursor, limit)
}

// ListAll mocks base method.
func (m *MockReservationQueries) ListAll(ctx context.Context, status *reservation.Status, cursor string, limit int) (*queries.ReservationPage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAll", ctx, status, cursor, limit)
	ret0, _ := ret[0].(*queries.ReservationPage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAll indicates an expected call of ListAll.
func (mr *MockReservationQueriesMockRecorder) ListAll(ctx, status, cursor, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAll", reflect.TypeOf((*MockReservationQueries)(nil).ListAll), ctx, status, cursor, limit)
}

// MockResourceQueries is a mock of ResourceQueries interface.
type MockResourceQueries struct {
	ctrl     *gomock.Controller
	recorder *MockResourceQueriesMockRecorder
	isgomock struct{}
}

// MockResourceQueriesMockRecorder is the mock recorder for MockResourceQueries.
type MockResourceQueriesMockRecorder struct {
	mock *MockResourceQueries
}

// NewMockResourceQueries creates a new mock instance.
func NewMockResourceQueries(ctrl *gomock.Controller) *MockResourceQueries {
	mock := &MockResourceQueries{ctrl: ctrl}
	mock.recorder = &MockResourceQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceQueries) EXPECT() *MockResourceQueriesMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockResourceQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*queries.ResourceView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockResourceQueriesMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockResourceQueries)(nil).GetByID), ctx, id)
}

// List mocks base method.
func (m *MockResourceQueries) List(ctx context.Context, limit int, offset int) ([]*queries.ResourceView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, limit, offset)
	ret0, _ := ret[0].([]*queries.ResourceView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockResourceQueriesMockRecorder) List(ctx, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockResourceQueries)(nil).List), ctx, limit, offset)
}

// MockAvailabilityQueries is a mock of AvailabilityQueries interface.
type MockAvailabilityQueries struct {
	ctrl     *gomock.Controller
	recorder *MockAvailabilityQueriesMockRecorder
	isgomock struct{}
}

// MockAvailabilityQueriesMockRecorder is the mock recorder for MockAvailabilityQueries.
type MockAvailabilityQueriesMockRecorder struct {
	mock *MockAvailabilityQueries
}

// NewMockAvailabilityQueries creates a new mock instance.
func NewMockAvailabilityQueries(ctrl *gomock.Controller) *MockAvailabilityQueries {
	mock := &MockAvailabilityQueries{ctrl: ctrl}
	mock.recorder = &MockAvailabilityQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAvailabilityQueries) EXPECT() *MockAvailabilityQueriesMockRecorder {
	return m.recorder
}

// ListAvailability mocks base method.
func (m *MockAvailabilityQueries) ListAvailability(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) (*queries.AvailabilityView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAvailability", ctx, resourceID, date)
	ret0, _ := ret[0].(*queries.AvailabilityView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAvailability indicates an expected call of ListAvailability.
func (mr *MockAvailabilityQueriesMockRecorder) ListAvailability(ctx, resourceID, date any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAvailability", reflect.TypeOf((*MockAvailabilityQueries)(nil).ListAvailability), ctx, resourceID, date)
}

// MockWalletQueries is a mock of WalletQueries interface.
type MockWalletQueries struct {
	ctrl     *gomock.Controller
	recorder *MockWalletQueriesMockRecorder
	isgomock struct{}
}

// MockWalletQueriesMockRecorder is the mock recorder for MockWalletQueries.
type MockWalletQueriesMockRecorder struct {
	mock *MockWalletQueries
}

// NewMockWalletQueries creates a new mock instance.
func NewMockWalletQueries(ctrl *gomock.Controller) *MockWalletQueries {
	mock := &MockWalletQueries{ctrl: ctrl}
	mock.recorder = &MockWalletQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWalletQueries) EXPECT() *MockWalletQueriesMockRecorder {
	return m.recorder
}

// GetByUser mocks base method.
func (m *MockWalletQueries) GetByUser(ctx context.Context, userID uuid.UUID) (*queries.WalletView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByUser", ctx, userID)
	ret0, _ := ret[0].(*queries.WalletView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByUser indicates an expected call of GetByUser.
func (mr *MockWalletQueriesMockRecorder) GetByUser(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByUser", reflect.TypeOf((*MockWalletQueries)(nil).GetByUser), ctx, userID)
}

// ListPendingDeposits mocks base method.
func (m *MockWalletQueries) ListPendingDeposits(ctx context.Context, limit int) ([]*queries.LedgerEntryView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPendingDeposits", ctx, limit)
	ret0, _ := ret[0].([]*queries.LedgerEntryView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListPendingDeposits indicates an expected call of ListPendingDeposits.
func (mr *MockWalletQueriesMockRecorder) ListPendingDeposits(ctx, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPendingDeposits", reflect.TypeOf((*MockWalletQueries)(nil).ListPendingDeposits), ctx, limit)
}
