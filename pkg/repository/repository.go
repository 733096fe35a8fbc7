package repository

import (
	"context"
	"math"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
)

// AccountRepository defines the interface for account data access operations.
// Implementations return value snapshots, never pointers into store state.
type AccountRepository interface {
	// Get returns the account or account.ErrAccountNotFound.
	Get(ctx context.Context, id string) (account.Account, error)
	// GetForUpdate returns the account and holds it exclusively until the
	// surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id string) (account.Account, error)
	// Save inserts or updates the account by ID.
	Save(ctx context.Context, a account.Account) error
	List(ctx context.Context) ([]account.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]account.Account, error)
}

// OperationRepository is the append-only operation log. There is no update or delete.
type OperationRepository interface {
	// Save appends the operation and returns it with its assigned ID.
	Save(ctx context.Context, op account.Operation) (account.Operation, error)
	// ListByAccount returns every operation of the account ordered by (date, id).
	ListByAccount(ctx context.Context, accountID string) ([]account.Operation, error)
	// PageByAccount returns one zero-based window of the ordered log.
	PageByAccount(ctx context.Context, accountID string, page, size int) (Page[account.Operation], error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	Get(ctx context.Context, id int64) (customer.Customer, error)
	// Create stores the customer and returns it with its assigned ID.
	Create(ctx context.Context, c customer.Customer) (customer.Customer, error)
	Update(ctx context.Context, c customer.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]customer.Customer, error)
	// Search returns customers whose name contains keyword, ignoring case.
	Search(ctx context.Context, keyword string) ([]customer.Customer, error)
}

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalCount int64
}

// TotalPages returns ceil(TotalCount / Size).
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// PageOffset returns the index of the first item of a page. ok is false when
// page*size does not fit in an int; such a page lies past the end of any
// result set.
func PageOffset(page, size int) (offset int, ok bool) {
	if page < 0 || size <= 0 {
		return 0, false
	}
	if page > (math.MaxInt-1)/size {
		return 0, false
	}
	return page * size, true
}

// PageBounds returns the [start, end) slice bounds of a page over total items,
// clamped to total so that out-of-range pages yield an empty window.
func PageBounds(total, page, size int) (int, int) {
	start, ok := PageOffset(page, size)
	if !ok || start > total {
		return total, total
	}
	end := total
	if size < total-start {
		end = start + size
	}
	return start, end
}
