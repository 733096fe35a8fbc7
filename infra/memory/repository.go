package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/repository"
)

type runner func(ctx context.Context, fn func(st *state) error) error

type accountRepo struct {
	run runner
}

func (r *accountRepo) Get(ctx context.Context, id string) (acc account.Account, err error) {
	err = r.run(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return account.ErrAccountNotFound
		}
		acc = a
		return nil
	})
	return
}

// GetForUpdate is Get: the unit of work already holds the store exclusively.
func (r *accountRepo) GetForUpdate(ctx context.Context, id string) (account.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepo) Save(ctx context.Context, a account.Account) error {
	return r.run(ctx, func(st *state) error {
		st.accounts[a.ID] = a
		return nil
	})
}

func (r *accountRepo) List(ctx context.Context) (out []account.Account, err error) {
	err = r.run(ctx, func(st *state) error {
		out = sortedAccounts(st, func(account.Account) bool { return true })
		return nil
	})
	return
}

func (r *accountRepo) ListByCustomer(ctx context.Context, customerID int64) (out []account.Account, err error) {
	err = r.run(ctx, func(st *state) error {
		out = sortedAccounts(st, func(a account.Account) bool { return a.CustomerID == customerID })
		return nil
	})
	return
}

func sortedAccounts(st *state, keep func(account.Account) bool) []account.Account {
	out := make([]account.Account, 0, len(st.accounts))
	for _, a := range st.accounts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type operationRepo struct {
	run runner
}

func (r *operationRepo) Save(ctx context.Context, op account.Operation) (saved account.Operation, err error) {
	err = r.run(ctx, func(st *state) error {
		st.nextOpID++
		op.ID = st.nextOpID
		st.operations = append(st.operations, op)
		saved = op
		return nil
	})
	return
}

func (r *operationRepo) ListByAccount(ctx context.Context, accountID string) (out []account.Operation, err error) {
	err = r.run(ctx, func(st *state) error {
		out = accountOperations(st, accountID)
		return nil
	})
	return
}

func (r *operationRepo) PageByAccount(
	ctx context.Context,
	accountID string,
	page, size int,
) (p repository.Page[account.Operation], err error) {
	if page < 0 || size <= 0 {
		return p, account.ErrInvalidPage
	}
	err = r.run(ctx, func(st *state) error {
		all := accountOperations(st, accountID)
		start, end := repository.PageBounds(len(all), page, size)
		p = repository.Page[account.Operation]{
			Items:      slices.Clone(all[start:end]),
			Page:       page,
			Size:       size,
			TotalCount: int64(len(all)),
		}
		return nil
	})
	return
}

func accountOperations(st *state, accountID string) []account.Operation {
	out := make([]account.Operation, 0)
	for _, op := range st.operations {
		if op.AccountID == accountID {
			out = append(out, op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

type customerRepo struct {
	run runner
}

func (r *customerRepo) Get(ctx context.Context, id int64) (c customer.Customer, err error) {
	err = r.run(ctx, func(st *state) error {
		found, ok := st.customers[id]
		if !ok {
			return customer.ErrCustomerNotFound
		}
		c = found
		return nil
	})
	return
}

func (r *customerRepo) Create(ctx context.Context, c customer.Customer) (created customer.Customer, err error) {
	err = r.run(ctx, func(st *state) error {
		st.nextCustID++
		c.ID = st.nextCustID
		st.customers[c.ID] = c
		created = c
		return nil
	})
	return
}

func (r *customerRepo) Update(ctx context.Context, c customer.Customer) error {
	return r.run(ctx, func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return customer.ErrCustomerNotFound
		}
		st.customers[c.ID] = c
		return nil
	})
}

func (r *customerRepo) Delete(ctx context.Context, id int64) error {
	return r.run(ctx, func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return customer.ErrCustomerNotFound
		}
		for _, a := range st.accounts {
			if a.CustomerID == id {
				return customer.ErrCustomerHasAccounts
			}
		}
		delete(st.customers, id)
		return nil
	})
}

func (r *customerRepo) List(ctx context.Context) ([]customer.Customer, error) {
	return r.filter(ctx, func(customer.Customer) bool { return true })
}

func (r *customerRepo) Search(ctx context.Context, keyword string) ([]customer.Customer, error) {
	keyword = strings.TrimSpace(keyword)
	return r.filter(ctx, func(c customer.Customer) bool { return c.Matches(keyword) })
}

func (r *customerRepo) filter(ctx context.Context, keep func(customer.Customer) bool) (out []customer.Customer, err error) {
	err = r.run(ctx, func(st *state) error {
		out = make([]customer.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			if keep(c) {
				out = append(out, c)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return
}
