// Package mocks holds testify mocks of the ledger store and event bus interfaces.
package mocks

import (
	"context"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUnitOfWork is a mock of repository.UnitOfWork. Do calls fn with the mock
// itself unless a return value is configured for it.
type MockUnitOfWork struct {
	mock.Mock
}

func NewMockUnitOfWork(t cleanupT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockUnitOfWork) Accounts() repository.AccountRepository {
	return m.Called().Get(0).(repository.AccountRepository)
}

func (m *MockUnitOfWork) Operations() repository.OperationRepository {
	return m.Called().Get(0).(repository.OperationRepository)
}

func (m *MockUnitOfWork) Customers() repository.CustomerRepository {
	return m.Called().Get(0).(repository.CustomerRepository)
}

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t cleanupT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Get(ctx context.Context, id string) (account.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id string) (account.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, a account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]account.Account, error) {
	args := m.Called(ctx)
	accs, _ := args.Get(0).([]account.Account)
	return accs, args.Error(1)
}

func (m *MockAccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]account.Account, error) {
	args := m.Called(ctx, customerID)
	accs, _ := args.Get(0).([]account.Account)
	return accs, args.Error(1)
}

// MockOperationRepository is a mock of repository.OperationRepository.
type MockOperationRepository struct {
	mock.Mock
}

func NewMockOperationRepository(t cleanupT) *MockOperationRepository {
	m := &MockOperationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOperationRepository) Save(ctx context.Context, op account.Operation) (account.Operation, error) {
	args := m.Called(ctx, op)
	return args.Get(0).(account.Operation), args.Error(1)
}

func (m *MockOperationRepository) ListByAccount(ctx context.Context, accountID string) ([]account.Operation, error) {
	args := m.Called(ctx, accountID)
	ops, _ := args.Get(0).([]account.Operation)
	return ops, args.Error(1)
}

func (m *MockOperationRepository) PageByAccount(
	ctx context.Context,
	accountID string,
	page, size int,
) (repository.Page[account.Operation], error) {
	args := m.Called(ctx, accountID, page, size)
	return args.Get(0).(repository.Page[account.Operation]), args.Error(1)
}

// MockCustomerRepository is a mock of repository.CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func NewMockCustomerRepository(t cleanupT) *MockCustomerRepository {
	m := &MockCustomerRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCustomerRepository) Get(ctx context.Context, id int64) (customer.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]customer.Customer)
	return cs, args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, keyword string) ([]customer.Customer, error) {
	args := m.Called(ctx, keyword)
	cs, _ := args.Get(0).([]customer.Customer)
	return cs, args.Error(1)
}

// MockBus is a mock of eventbus.Bus.
type MockBus struct {
	mock.Mock
}

func NewMockBus(t cleanupT) *MockBus {
	m := &MockBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBus) Register(eventType string, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

func (m *MockBus) Emit(ctx context.Context, event eventbus.Event) error {
	return m.Called(ctx, event).Error(0)
}

var (
	_ repository.UnitOfWork          = (*MockUnitOfWork)(nil)
	_ repository.AccountRepository   = (*MockAccountRepository)(nil)
	_ repository.OperationRepository = (*MockOperationRepository)(nil)
	_ repository.CustomerRepository  = (*MockCustomerRepository)(nil)
	_ eventbus.Bus                   = (*MockBus)(nil)
)
