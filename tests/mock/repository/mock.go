// Package repositorymock holds gomock doubles for the write-side query sets used by the repositories.
// Interfaces are declared in internal/infra/repository.
package repositorymock

import (
	"context"
	"reflect"

	"field-rental/internal/infra/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/mock/gomock"
)

// MockReservationWriteQueries is a mock of ReservationWriteQueries interface.
type MockReservationWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockReservationWriteQueriesMockRecorder
	isgomock struct{}
}

// MockReservationWriteQueriesMockRecorder is the mock recorder for MockReservationWriteQueries.
type MockReservationWriteQueriesMockRecorder struct {
	mock *MockReservationWriteQueries
}

// NewMockReservationWriteQueries creates a new mock instance.
func NewMockReservationWriteQueries(ctrl *gomock.Controller) *MockReservationWriteQueries {
	mock := &MockReservationWriteQueries{ctrl: ctrl}
	mock.recorder = &MockReservationWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReservationWriteQueries) EXPECT() *MockReservationWriteQueriesMockRecorder {
	return m.recorder
}

// CreateReservation mocks base method.
func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db query.DBTX, arg query.Reservations) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateReservation", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateReservation indicates an expected call of CreateReservation.
func (mr *MockReservationWriteQueriesMockRecorder) CreateReservation(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateReservation", reflect.TypeOf((*MockReservationWriteQueries)(nil).CreateReservation), ctx, db, arg)
}

// TransitionReservationStatus mocks base method.
func (m *MockReservationWriteQueries) TransitionReservationStatus(ctx context.Context, db query.DBTX, arg query.TransitionReservationStatusParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransitionReservationStatus", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TransitionReservationStatus indicates an expected call of TransitionReservationStatus.
func (mr *MockReservationWriteQueriesMockRecorder) TransitionReservationStatus(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransitionReservationStatus", reflect.TypeOf((*MockReservationWriteQueries)(nil).TransitionReservationStatus), ctx, db, arg)
}

// DeleteReservation mocks base method.
func (m *MockReservationWriteQueries) DeleteReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteReservation", ctx, db, id)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteReservation indicates an expected call of DeleteReservation.
func (mr *MockReservationWriteQueriesMockRecorder) DeleteReservation(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteReservation", reflect.TypeOf((*MockReservationWriteQueries)(nil).DeleteReservation), ctx, db, id)
}

// MockResourceWriteQueries is a mock of ResourceWriteQueries interface.
type MockResourceWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockResourceWriteQueriesMockRecorder
	isgomock struct{}
}

// MockResourceWriteQueriesMockRecorder is the mock recorder for MockResourceWriteQueries.
type MockResourceWriteQueriesMockRecorder struct {
	mock *MockResourceWriteQueries
}

// NewMockResourceWriteQueries creates a new mock instance.
func NewMockResourceWriteQueries(ctrl *gomock.Controller) *MockResourceWriteQueries {
	mock := &MockResourceWriteQueries{ctrl: ctrl}
	mock.recorder = &MockResourceWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceWriteQueries) EXPECT() *MockResourceWriteQueriesMockRecorder {
	return m.recorder
}

// CreateResource mocks base method.
func (m *MockResourceWriteQueries) CreateResource(ctx context.Context, db query.DBTX, arg query.Resources) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateResource", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateResource indicates an expected call of CreateResource.
func (mr *MockResourceWriteQueriesMockRecorder) CreateResource(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateResource", reflect.TypeOf((*MockResourceWriteQueries)(nil).CreateResource), ctx, db, arg)
}

// DeleteResource mocks base method.
func (m *MockResourceWriteQueries) DeleteResource(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteResource", ctx, db, id)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteResource indicates an expected call of DeleteResource.
func (mr *MockResourceWriteQueriesMockRecorder) DeleteResource(ctx, db, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteResource", reflect.TypeOf((*MockResourceWriteQueries)(nil).DeleteResource), ctx, db, id)
}

// UpdateResource mocks base method.
func (m *MockResourceWriteQueries) UpdateResource(ctx context.Context, db query.DBTX, arg query.Resources) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateResource", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateResource indicates an expected call of UpdateResource.
func (mr *MockResourceWriteQueriesMockRecorder) UpdateResource(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateResource", reflect.TypeOf((*MockResourceWriteQueries)(nil).UpdateResource), ctx, db, arg)
}

// MockWalletWriteQueries is a mock of WalletWriteQueries interface.
type MockWalletWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockWalletWriteQueriesMockRecorder
	isgomock struct{}
}

// MockWalletWriteQueriesMockRecorder is the mock recorder for MockWalletWriteQueries.
type MockWalletWriteQueriesMockRecorder struct {
	mock *MockWalletWriteQueries
}

// NewMockWalletWriteQueries creates a new mock instance.
func NewMockWalletWriteQueries(ctrl *gomock.Controller) *MockWalletWriteQueries {
	mock := &MockWalletWriteQueries{ctrl: ctrl}
	mock.recorder = &MockWalletWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWalletWriteQueries) EXPECT() *MockWalletWriteQueriesMockRecorder {
	return m.recorder
}

// EnsureWallet mocks base method.
func (m *MockWalletWriteQueries) EnsureWallet(ctx context.Context, db query.DBTX, userID uuid.UUID, updatedAt pgtype.Timestamptz) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureWallet", ctx, db, userID, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnsureWallet indicates an expected call of EnsureWallet.
func (mr *MockWalletWriteQueriesMockRecorder) EnsureWallet(ctx, db, userID, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureWallet", reflect.TypeOf((*MockWalletWriteQueries)(nil).EnsureWallet), ctx, db, userID, updatedAt)
}

// SaveWalletBalance mocks base method.
func (m *MockWalletWriteQueries) SaveWalletBalance(ctx context.Context, db query.DBTX, arg query.SaveWalletBalanceParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveWalletBalance", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SaveWalletBalance indicates an expected call of SaveWalletBalance.
func (mr *MockWalletWriteQueriesMockRecorder) SaveWalletBalance(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveWalletBalance", reflect.TypeOf((*MockWalletWriteQueries)(nil).SaveWalletBalance), ctx, db, arg)
}

// MockLedgerWriteQueries is a mock of LedgerWriteQueries interface.
type MockLedgerWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerWriteQueriesMockRecorder
	isgomock struct{}
}

// MockLedgerWriteQueriesMockRecorder is the mock recorder for MockLedgerWriteQueries.
type MockLedgerWriteQueriesMockRecorder struct {
	mock *MockLedgerWriteQueries
}

// NewMockLedgerWriteQueries creates a new mock instance.
func NewMockLedgerWriteQueries(ctrl *gomock.Controller) *MockLedgerWriteQueries {
	mock := &MockLedgerWriteQueries{ctrl: ctrl}
	mock.recorder = &MockLedgerWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedgerWriteQueries) EXPECT() *MockLedgerWriteQueriesMockRecorder {
	return m.recorder
}

// CreateWalletEntry mocks base method.
func (m *MockLedgerWriteQueries) CreateWalletEntry(ctx context.Context, db query.DBTX, arg query.WalletEntries) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateWalletEntry", ctx, db, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateWalletEntry indicates an expected call of CreateWalletEntry.
func (mr *MockLedgerWriteQueriesMockRecorder) CreateWalletEntry(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateWalletEntry", reflect.TypeOf((*MockLedgerWriteQueries)(nil).CreateWalletEntry), ctx, db, arg)
}

// ConfirmWalletEntry mocks base method.
func (m *MockLedgerWriteQueries) ConfirmWalletEntry(ctx context.Context, db query.DBTX, id uuid.UUID, confirmedAt pgtype.Timestamptz) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmWalletEntry", ctx, db, id, confirmedAt)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmWalletEntry indicates an expected call of ConfirmWalletEntry.
func (mr *MockLedgerWriteQueriesMockRecorder) ConfirmWalletEntry(ctx, db, id, confirmedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmWalletEntry", reflect.TypeOf((*MockLedgerWriteQueries)(nil).ConfirmWalletEntry), ctx, db, id, confirmedAt)
}

// MockIdempotencyWriteQueries is a mock of IdempotencyWriteQueries interface.
type MockIdempotencyWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockIdempotencyWriteQueriesMockRecorder
	isgomock struct{}
}

// MockIdempotencyWriteQueriesMockRecorder is the mock recorder for MockIdempotencyWriteQueries.
type MockIdempotencyWriteQueriesMockRecorder struct {
	mock *MockIdempotencyWriteQueries
}

// NewMockIdempotencyWriteQueries creates a new mock instance.
func NewMockIdempotencyWriteQueries(ctrl *gomock.Controller) *MockIdempotencyWriteQueries {
	mock := &MockIdempotencyWriteQueries{ctrl: ctrl}
	mock.recorder = &MockIdempotencyWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIdempotencyWriteQueries) EXPECT() *MockIdempotencyWriteQueriesMockRecorder {
	return m.recorder
}

// ClaimIdempotencyKey mocks base method.
func (m *MockIdempotencyWriteQueries) ClaimIdempotencyKey(ctx context.Context, db query.DBTX, arg query.ClaimIdempotencyKeyParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimIdempotencyKey", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimIdempotencyKey indicates an expected call of ClaimIdempotencyKey.
func (mr *MockIdempotencyWriteQueriesMockRecorder) ClaimIdempotencyKey(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimIdempotencyKey", reflect.TypeOf((*MockIdempotencyWriteQueries)(nil).ClaimIdempotencyKey), ctx, db, arg)
}

// CompleteIdempotencyKey mocks base method.
func (m *MockIdempotencyWriteQueries) CompleteIdempotencyKey(ctx context.Context, db query.DBTX, key uuid.UUID, userID uuid.UUID, reservationID uuid.UUID) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteIdempotencyKey", ctx, db, key, userID, reservationID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompleteIdempotencyKey indicates an expected call of CompleteIdempotencyKey.
func (mr *MockIdempotencyWriteQueriesMockRecorder) CompleteIdempotencyKey(ctx, db, key, userID, reservationID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteIdempotencyKey", reflect.TypeOf((*MockIdempotencyWriteQueries)(nil).CompleteIdempotencyKey), ctx, db, key, userID, reservationID)
}

// MockNotificationWriteQueries is a mock of NotificationWriteQueries interface.
type MockNotificationWriteQueries struct {
	ctrl     *gomock.Controller
	recorder *MockNotificationWriteQueriesMockRecorder
	isgomock struct{}
}

// MockNotificationWriteQueriesMockRecorder is the mock recorder for MockNotificationWriteQueries.
type MockNotificationWriteQueriesMockRecorder struct {
	mock *MockNotificationWriteQueries
}

// NewMockNotificationWriteQueries creates a new mock instance.
func NewMockNotificationWriteQueries(ctrl *gomock.Controller) *MockNotificationWriteQueries {
	mock := &MockNotificationWriteQueries{ctrl: ctrl}
	mock.recorder = &MockNotificationWriteQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotificationWriteQueries) EXPECT() *MockNotificationWriteQueriesMockRecorder {
	return m.recorder
}

// CreateNotificationJob mocks base method.
func (m *MockNotificationWriteQueries) CreateNotificationJob(ctx context.Context, db query.DBTX, topic string, payload []byte, runAt pgtype.Timestamptz) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateNotificationJob", ctx, db, topic, payload, runAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateNotificationJob indicates an expected call of CreateNotificationJob.
func (mr *MockNotificationWriteQueriesMockRecorder) CreateNotificationJob(ctx, db, topic, payload, runAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateNotificationJob", reflect.TypeOf((*MockNotificationWriteQueries)(nil).CreateNotificationJob), ctx, db, topic, payload, runAt)
}

// MockOutboxQueries is a mock of OutboxQueries interface.
type MockOutboxQueries struct {
	ctrl     *gomock.Controller
	recorder *MockOutboxQueriesMockRecorder
	isgomock struct{}
}

// MockOutboxQueriesMockRecorder is the mock recorder for MockOutboxQueries.
type MockOutboxQueriesMockRecorder struct {
	mock *MockOutboxQueries
}

// NewMockOutboxQueries creates a new mock instance.
func NewMockOutboxQueries(ctrl *gomock.Controller) *MockOutboxQueries {
	mock := &MockOutboxQueries{ctrl: ctrl}
	mock.recorder = &MockOutboxQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockOutboxQueries) EXPECT() *MockOutboxQueriesMockRecorder {
	return m.recorder
}

// ClaimNotificationJobs mocks base method.
func (m *MockOutboxQueries) ClaimNotificationJobs(ctx context.Context, db query.DBTX, arg query.ClaimNotificationJobsParams) ([]query.ClaimNotificationJobsRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimNotificationJobs", ctx, db, arg)
	ret0, _ := ret[0].([]query.ClaimNotificationJobsRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimNotificationJobs indicates an expected call of ClaimNotificationJobs.
func (mr *MockOutboxQueriesMockRecorder) ClaimNotificationJobs(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimNotificationJobs", reflect.TypeOf((*MockOutboxQueries)(nil).ClaimNotificationJobs), ctx, db, arg)
}

// UpdateNotificationJobStatus mocks base method.
func (m *MockOutboxQueries) UpdateNotificationJobStatus(ctx context.Context, db query.DBTX, arg query.UpdateNotificationJobStatusParams) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateNotificationJobStatus", ctx, db, arg)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateNotificationJobStatus indicates an expected call of UpdateNotificationJobStatus.
func (mr *MockOutboxQueriesMockRecorder) UpdateNotificationJobStatus(ctx, db, arg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateNotificationJobStatus", reflect.TypeOf((*MockOutboxQueries)(nil).UpdateNotificationJobStatus), ctx, db, arg)
}
