// Package commandsmock holds gomock doubles for the use-case command ports.
// Interfaces are declared in internal/usecase/commands.
package commandsmock

import (
	"context"
	"reflect"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/resource"
	"field-rental/internal/usecase/commands"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

// MockReservationCommands is a mock of ReservationCommands interface.
type MockReservationCommands struct {
	ctrl     *gomock.Controller
	recorder *MockReservationCommandsMockRecorder
	isgomock struct{}
}

// MockReservationCommandsMockRecorder is the mock recorder for MockReservationCommands.
type MockReservationCommandsMockRecorder struct {
	mock *MockReservationCommands
}

// NewMockReservationCommands creates a new mock instance.
func NewMockReservationCommands(ctrl *gomock.Controller) *MockReservationCommands {
	mock := &MockReservationCommands{ctrl: ctrl}
	mock.recorder = &MockReservationCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReservationCommands) EXPECT() *MockReservationCommandsMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockReservationCommands) Create(ctx context.Context, in commands.CreateReservationInput, userID uuid.UUID, idempotencyKey *uuid.UUID) (*commands.CreateReservationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, in, userID, idempotencyKey)
	ret0, _ := ret[0].(*commands.CreateReservationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockReservationCommandsMockRecorder) Create(ctx, in, userID, idempotencyKey any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockReservationCommands)(nil).Create), ctx, in, userID, idempotencyKey)
}

// Accept mocks base method.
func (m *MockReservationCommands) Accept(ctx context.Context, reservationID uuid.UUID, operatorID uuid.UUID) (*commands.AcceptReservationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Accept", ctx, reservationID, operatorID)
	ret0, _ := ret[0].(*commands.AcceptReservationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Accept indicates an expected call of Accept.
func (mr *MockReservationCommandsMockRecorder) Accept(ctx, reservationID, operatorID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Accept", reflect.TypeOf((*MockReservationCommands)(nil).Accept), ctx, reservationID, operatorID)
}

// Reject mocks base method.
func (m *MockReservationCommands) Reject(ctx context.Context, reservationID uuid.UUID, operatorID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reject", ctx, reservationID, operatorID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reject indicates an expected call of Reject.
func (mr *MockReservationCommandsMockRecorder) Reject(ctx, reservationID, operatorID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reject", reflect.TypeOf((*MockReservationCommands)(nil).Reject), ctx, reservationID, operatorID)
}

// Delete mocks base method.
func (m *MockReservationCommands) Delete(ctx context.Context, reservationID uuid.UUID, operatorID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, reservationID, operatorID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockReservationCommandsMockRecorder) Delete(ctx, reservationID, operatorID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockReservationCommands)(nil).Delete), ctx, reservationID, operatorID)
}

// MockResourceCommands is a mock of ResourceCommands interface.
type MockResourceCommands struct {
	ctrl     *gomock.Controller
	recorder *MockResourceCommandsMockRecorder
	isgomock struct{}
}

// MockResourceCommandsMockRecorder is the mock recorder for MockResourceCommands.
type MockResourceCommandsMockRecorder struct {
	mock *MockResourceCommands
}

// NewMockResourceCommands creates a new mock instance.
func NewMockResourceCommands(ctrl *gomock.Controller) *MockResourceCommands {
	mock := &MockResourceCommands{ctrl: ctrl}
	mock.recorder = &MockResourceCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceCommands) EXPECT() *MockResourceCommandsMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockResourceCommands) Create(ctx context.Context, d resource.Details) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, d)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockResourceCommandsMockRecorder) Create(ctx, d any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockResourceCommands)(nil).Create), ctx, d)
}

// Delete mocks base method.
func (m *MockResourceCommands) Delete(ctx context.Context, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockResourceCommandsMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockResourceCommands)(nil).Delete), ctx, id)
}

// Update mocks base method.
func (m *MockResourceCommands) Update(ctx context.Context, id uuid.UUID, p resource.Patch) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, p)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockResourceCommandsMockRecorder) Update(ctx, id, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockResourceCommands)(nil).Update), ctx, id, p)
}

// MockWalletCommands is a mock of WalletCommands interface.
type MockWalletCommands struct {
	ctrl     *gomock.Controller
	recorder *MockWalletCommandsMockRecorder
	isgomock struct{}
}

// MockWalletCommandsMockRecorder is the mock recorder for MockWalletCommands.
type MockWalletCommandsMockRecorder struct {
	mock *MockWalletCommands
}

// NewMockWalletCommands creates a new mock instance.
func NewMockWalletCommands(ctrl *gomock.Controller) *MockWalletCommands {
	mock := &MockWalletCommands{ctrl: ctrl}
	mock.recorder = &MockWalletCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWalletCommands) EXPECT() *MockWalletCommandsMockRecorder {
	return m.recorder
}

// RequestDeposit mocks base method.
func (m *MockWalletCommands) RequestDeposit(ctx context.Context, userID uuid.UUID, amount money.Money) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RequestDeposit", ctx, userID, amount)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RequestDeposit indicates an expected call of RequestDeposit.
func (mr *MockWalletCommandsMockRecorder) RequestDeposit(ctx, userID, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequestDeposit", reflect.TypeOf((*MockWalletCommands)(nil).RequestDeposit), ctx, userID, amount)
}

// ConfirmDeposit mocks base method.
func (m *MockWalletCommands) ConfirmDeposit(ctx context.Context, entryID uuid.UUID, operatorID uuid.UUID) (*commands.CreditResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmDeposit", ctx, entryID, operatorID)
	ret0, _ := ret[0].(*commands.CreditResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmDeposit indicates an expected call of ConfirmDeposit.
func (mr *MockWalletCommandsMockRecorder) ConfirmDeposit(ctx, entryID, operatorID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmDeposit", reflect.TypeOf((*MockWalletCommands)(nil).ConfirmDeposit), ctx, entryID, operatorID)
}

// CreditTopUp mocks base method.
func (m *MockWalletCommands) CreditTopUp(ctx context.Context, in commands.TopUpInput) (*commands.CreditResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreditTopUp", ctx, in)
	ret0, _ := ret[0].(*commands.CreditResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreditTopUp indicates an expected call of CreditTopUp.
func (mr *MockWalletCommandsMockRecorder) CreditTopUp(ctx, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreditTopUp", reflect.TypeOf((*MockWalletCommands)(nil).CreditTopUp), ctx, in)
}
