package repository

import (
	"context"

	"github.com/ebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
// Calling Do on the UoW passed to fn joins the running transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx}
		return fn(txnUow)
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Accounts returns an account repository bound to the current session.
func (u *UoW) Accounts() repository.AccountRepository {
	return NewAccountRepository(u.session())
}

// Operations returns an operation repository bound to the current session.
func (u *UoW) Operations() repository.OperationRepository {
	return NewOperationRepository(u.session())
}

// Customers returns a customer repository bound to the current session.
func (u *UoW) Customers() repository.CustomerRepository {
	return NewCustomerRepository(u.session())
}

var _ repository.UnitOfWork = (*UoW)(nil)
