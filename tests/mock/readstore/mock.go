// Package readstoremock holds gomock doubles for the read-side query sets used by the read stores.
// Interfaces are declared in internal/infra/readstore.
package readstoremock

import (
	"context"
	"reflect"

	"field-rental/internal/infra/query"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

// MockReservationViewQueries is a mock of ReservationViewQueries interface.
type MockReservationViewQueries struct {
	ctrl     *gomock.Controller
	recorder *MockReservationViewQueriesMockRecorder
	isgomock struct{}
}

// MockReservationViewQueriesMockRecorder is the mock recorder for MockReservationViewQueries.
type MockReservationViewQueriesMockRecorder struct {
	mock *MockReservationViewQueries
}

// NewMockReservationViewQueries creates a new mock instance.
func NewMockReservationViewQueries(ctrl *gomock.Controller) *MockReservationViewQueries {
	mock := &MockReservationViewQueries{ctrl: ctrl}
	mock.recorder = &MockReservationViewQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReservationViewQueries) EXPECT() *MockReservationViewQueriesMockRecorder {
	return m.recorder
}

// GetReservationView mocks base method.
func (m *MockReservationViewQueries) GetReservationView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.ReservationViewRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetReservationView", ctx, db, id)
	ret0, _ := ret[0].(query.ReservationViewRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetReservationView indicates an expected call of GetReservationView.
func (mr *MockReservationViewQueriesMockRecorder) GetReservationView(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetReservationView", reflect.TypeOf((*MockReservationViewQueries)(nil).GetReservationView), ctx, db, id)
}

// ListReservationViews mocks base method.
func (m *MockReservationViewQueries) ListReservationViews(ctx context.Context, db query.DBTX, arg query.ListReservationViewsParams) ([]query.ReservationViewRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListReservationViews", ctx, db, arg)
	ret0, _ := ret[0].([]query.ReservationViewRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListReservationViews indicates an expected call of ListReservationViews.
func (mr *MockReservationViewQueriesMockRecorder) ListReservationViews(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListReservationViews", reflect.TypeOf((*MockReservationViewQueries)(nil).ListReservationViews), ctx, db, arg)
}

// ListActiveRanges mocks base method.
func (m *MockReservationViewQueries) ListActiveRanges(ctx context.Context, db query.DBTX, arg query.ListActiveRangesParams) ([]query.ListActiveRangesRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActiveRanges", ctx, db, arg)
	ret0, _ := ret[0].([]query.ListActiveRangesRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActiveRanges indicates an expected call of ListActiveRanges.
func (mr *MockReservationViewQueriesMockRecorder) ListActiveRanges(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActiveRanges", reflect.TypeOf((*MockReservationViewQueries)(nil).ListActiveRanges), ctx, db, arg)
}

// MockResourceReadQueries is a mock of ResourceReadQueries interface.
type MockResourceReadQueries struct {
	ctrl     *gomock.Controller
	recorder *MockResourceReadQueriesMockRecorder
	isgomock struct{}
}

// MockResourceReadQueriesMockRecorder is the mock recorder for MockResourceReadQueries.
type MockResourceReadQueriesMockRecorder struct {
	mock *MockResourceReadQueries
}

// NewMockResourceReadQueries creates a new mock instance.
func NewMockResourceReadQueries(ctrl *gomock.Controller) *MockResourceReadQueries {
	mock := &MockResourceReadQueries{ctrl: ctrl}
	mock.recorder = &MockResourceReadQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceReadQueries) EXPECT() *MockResourceReadQueriesMockRecorder {
	return m.recorder
}

// GetResourceByID mocks base method.
func (m *MockResourceReadQueries) GetResourceByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Resources, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetResourceByID", ctx, db, id)
	ret0, _ := ret[0].(query.Resources)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetResourceByID indicates an expected call of GetResourceByID.
func (mr *MockResourceReadQueriesMockRecorder) GetResourceByID(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetResourceByID", reflect.TypeOf((*MockResourceReadQueries)(nil).GetResourceByID), ctx, db, id)
}

// ListResources mocks base method.
func (m *MockResourceReadQueries) ListResources(ctx context.Context, db query.DBTX, arg query.ListResourcesParams) ([]query.Resources, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListResources", ctx, db, arg)
	ret0, _ := ret[0].([]query.Resources)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListResources indicates an expected call of ListResources.
func (mr *MockResourceReadQueriesMockRecorder) ListResources(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListResources", reflect.TypeOf((*MockResourceReadQueries)(nil).ListResources), ctx, db, arg)
}

// MockWalletReadQueries is a mock of WalletReadQueries interface.
type MockWalletReadQueries struct {
	ctrl     *gomock.Controller
	recorder *MockWalletReadQueriesMockRecorder
	isgomock struct{}
}

// MockWalletReadQueriesMockRecorder is the mock recorder for MockWalletReadQueries.
type MockWalletReadQueriesMockRecorder struct {
	mock *MockWalletReadQueries
}

// NewMockWalletReadQueries creates a new mock instance.
func NewMockWalletReadQueries(ctrl *gomock.Controller) *MockWalletReadQueries {
	mock := &MockWalletReadQueries{ctrl: ctrl}
	mock.recorder = &MockWalletReadQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWalletReadQueries) EXPECT() *MockWalletReadQueriesMockRecorder {
	return m.recorder
}

// GetWallet mocks base method.
func (m *MockWalletReadQueries) GetWallet(ctx context.Context, db query.DBTX, userID uuid.UUID) (query.Wallets, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetWallet", ctx, db, userID)
	ret0, _ := ret[0].(query.Wallets)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetWallet indicates an expected call of GetWallet.
func (mr *MockWalletReadQueriesMockRecorder) GetWallet(ctx, db, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetWallet", reflect.TypeOf((*MockWalletReadQueries)(nil).GetWallet), ctx, db, userID)
}

// ListWalletEntries mocks base method.
func (m *MockWalletReadQueries) ListWalletEntries(ctx context.Context, db query.DBTX, userID uuid.UUID, limit int32) ([]query.WalletEntries, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListWalletEntries", ctx, db, userID, limit)
	ret0, _ := ret[0].([]query.WalletEntries)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListWalletEntries indicates an expected call of ListWalletEntries.
func (mr *MockWalletReadQueriesMockRecorder) ListWalletEntries(ctx, db, userID, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListWalletEntries", reflect.TypeOf((*MockWalletReadQueries)(nil).ListWalletEntries), ctx, db, userID, limit)
}

// ListPendingDeposits mocks base method.
func (m *MockWalletReadQueries) ListPendingDeposits(ctx context.Context, db query.DBTX, limit int32) ([]query.WalletEntries, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPendingDeposits", ctx, db, limit)
	ret0, _ := ret[0].([]query.WalletEntries)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListPendingDeposits indicates an expected call of ListPendingDeposits.
func (mr *MockWalletReadQueriesMockRecorder) ListPendingDeposits(ctx, db, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPendingDeposits", reflect.TypeOf((*MockWalletReadQueries)(nil).ListPendingDeposits), ctx, db, limit)
}

// MockIdempotencyReadQueries is a mock of IdempotencyReadQueries interface.
type MockIdempotencyReadQueries struct {
	ctrl     *gomock.Controller
	recorder *MockIdempotencyReadQueriesMockRecorder
	isgomock struct{}
}

// MockIdempotencyReadQueriesMockRecorder is the mock recorder for MockIdempotencyReadQueries.
type MockIdempotencyReadQueriesMockRecorder struct {
	mock *MockIdempotencyReadQueries
}

// NewMockIdempotencyReadQueries creates a new mock instance.
func NewMockIdempotencyReadQueries(ctrl *gomock.Controller) *MockIdempotencyReadQueries {
	mock := &MockIdempotencyReadQueries{ctrl: ctrl}
	mock.recorder = &MockIdempotencyReadQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIdempotencyReadQueries) EXPECT() *MockIdempotencyReadQueriesMockRecorder {
	return m.recorder
}

// GetIdempotencyKey mocks base method.
func (m *MockIdempotencyReadQueries) GetIdempotencyKey(ctx context.Context, db query.DBTX, key uuid.UUID, userID uuid.UUID) (query.IdempotencyKeys, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetIdempotencyKey", ctx, db, key, userID)
	ret0, _ := ret[0].(query.IdempotencyKeys)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetIdempotencyKey indicates an expected call of GetIdempotencyKey.
func (mr *MockIdempotencyReadQueriesMockRecorder) GetIdempotencyKey(ctx, db, key, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetIdempotencyKey", reflect.TypeOf((*MockIdempotencyReadQueries)(nil).GetIdempotencyKey), ctx, db, key, userID)
}
