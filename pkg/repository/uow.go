package repository

import "context"

// UnitOfWork scopes one transaction and hands out repositories bound to it.
//
// Do runs fn inside a transaction boundary. If fn returns an error every write
// made through the provided UnitOfWork is discarded; otherwise all of them
// become visible together.
//
// Example usage:
//
//	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
//		acc, err := tx.Accounts().GetForUpdate(ctx, id)
//		...
//	})
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Operations() OperationRepository
	Customers() CustomerRepository
}
