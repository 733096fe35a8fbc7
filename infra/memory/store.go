// Package memory provides an in-process ledger store.
//
// Every unit of work holds a single writer lock for its whole duration, so
// units of work are serialized. Writes go straight to the live maps; on error
// the state captured before fn ran is restored.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/repository"
)

type state struct {
	accounts   map[string]account.Account
	operations []account.Operation
	customers  map[int64]customer.Customer
	nextOpID   int64
	nextCustID int64
}

func (s *state) clone() state {
	return state{
		accounts:   maps.Clone(s.accounts),
		operations: s.operations[:len(s.operations):len(s.operations)],
		customers:  maps.Clone(s.customers),
		nextOpID:   s.nextOpID,
		nextCustID: s.nextCustID,
	}
}

// Store is the in-memory implementation of repository.UnitOfWork.
type Store struct {
	mu sync.Mutex
	st state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{st: state{
		accounts:  make(map[string]account.Account),
		customers: make(map[int64]customer.Customer),
	}}
}

// Do runs fn with exclusive access to the store. Calling Store methods (rather
// than the UnitOfWork passed to fn) from inside fn deadlocks.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	txn := &txnUow{st: &s.st}
	if err := fn(txn); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Accounts returns a repository whose calls each run in their own unit of work.
func (s *Store) Accounts() repository.AccountRepository {
	return &accountRepo{run: s.run}
}

// Operations returns a repository whose calls each run in their own unit of work.
func (s *Store) Operations() repository.OperationRepository {
	return &operationRepo{run: s.run}
}

// Customers returns a repository whose calls each run in their own unit of work.
func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepo{run: s.run}
}

func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	return s.Do(ctx, func(uow repository.UnitOfWork) error {
		return fn(uow.(*txnUow).st)
	})
}

// txnUow is the UnitOfWork handed to fn; the lock is already held.
type txnUow struct {
	st *state
}

// Do joins the running unit of work.
func (t *txnUow) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(t)
}

func (t *txnUow) Accounts() repository.AccountRepository {
	return &accountRepo{run: t.run}
}

func (t *txnUow) Operations() repository.OperationRepository {
	return &operationRepo{run: t.run}
}

func (t *txnUow) Customers() repository.CustomerRepository {
	return &customerRepo{run: t.run}
}

func (t *txnUow) run(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

var (
	_ repository.UnitOfWork = (*Store)(nil)
	_ repository.UnitOfWork = (*txnUow)(nil)
)
