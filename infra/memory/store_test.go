package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DoRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	acc := account.Account{ID: "a", Kind: account.KindSaving, Balance: decimal.NewFromInt(10)}
	require.NoError(t, s.Accounts().Save(ctx, acc))

	boom := errors.New("boom")
	err := s.Do(ctx, func(uow repository.UnitOfWork) error {
		acc.Balance = decimal.NewFromInt(99)
		require.NoError(t, uow.Accounts().Save(ctx, acc))
		_, err := uow.Operations().Save(ctx, account.NewOperation("a", account.Credit, decimal.NewFromInt(89), "x"))
		require.NoError(t, err)
		_, err = uow.Customers().Create(ctx, customer.Customer{Name: "ghost"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Accounts().Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)))

	ops, err := s.Operations().ListByAccount(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, ops)

	cs, err := s.Customers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cs)

	// IDs handed out inside a rolled back unit of work are reused.
	op, err := s.Operations().Save(ctx, account.NewOperation("a", account.Credit, decimal.NewFromInt(1), "y"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), op.ID)
}

func TestStore_NestedDoJoins(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := s.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Do(ctx, func(inner repository.UnitOfWork) error {
			_, err := inner.Customers().Create(ctx, customer.Customer{Name: "oma"})
			return err
		})
	})
	require.NoError(t, err)
	cs, err := s.Customers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 1)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewStore().Do(ctx, func(repository.UnitOfWork) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOperationRepo_OrderAndPaging(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []int{3, 1, 2, 1, 0} {
		op := account.NewOperation("a", account.Credit, decimal.NewFromInt(int64(i+1)), "x")
		op.Date = base.Add(time.Duration(offset) * time.Hour)
		_, err := s.Operations().Save(ctx, op)
		require.NoError(t, err)
	}
	_, err := s.Operations().Save(ctx, account.NewOperation("b", account.Debit, decimal.NewFromInt(1), "other"))
	require.NoError(t, err)

	ops, err := s.Operations().ListByAccount(ctx, "a")
	require.NoError(t, err)
	ids := make([]int64, 0, len(ops))
	for _, op := range ops {
		ids = append(ids, op.ID)
	}
	assert.Equal(t, []int64{5, 2, 4, 3, 1}, ids)

	p, err := s.Operations().PageByAccount(ctx, "a", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.TotalCount)
	assert.Equal(t, 3, p.TotalPages())
	require.Len(t, p.Items, 2)
	assert.Equal(t, int64(4), p.Items[0].ID)

	p, err = s.Operations().PageByAccount(ctx, "a", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, int64(5), p.TotalCount)

	for _, tt := range []struct{ page, size int }{
		{math.MaxInt/3 + 1, 3},
		{math.MaxInt/8 + 1, 8},
		{math.MaxInt, math.MaxInt},
	} {
		p, err = s.Operations().PageByAccount(ctx, "a", tt.page, tt.size)
		require.NoError(t, err)
		assert.Empty(t, p.Items, "page %d size %d", tt.page, tt.size)
		assert.Equal(t, int64(5), p.TotalCount)
	}

	_, err = s.Operations().PageByAccount(ctx, "a", 0, 0)
	assert.ErrorIs(t, err, account.ErrInvalidPage)
}

func TestAccountRepo_ListByCustomer(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Accounts().Save(ctx, account.Account{ID: "2", CustomerID: 1, CreatedAt: now.Add(time.Second)}))
	require.NoError(t, s.Accounts().Save(ctx, account.Account{ID: "1", CustomerID: 1, CreatedAt: now}))
	require.NoError(t, s.Accounts().Save(ctx, account.Account{ID: "3", CustomerID: 2, CreatedAt: now}))

	accs, err := s.Accounts().ListByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, accs, 2)
	assert.Equal(t, "1", accs[0].ID)
	assert.Equal(t, "2", accs[1].ID)

	_, err = s.Accounts().Get(ctx, "404")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, err = s.Accounts().GetForUpdate(ctx, "404")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestCustomerRepo_DeleteWithAccounts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, err := s.Customers().Create(ctx, customer.Customer{Name: "oma"})
	require.NoError(t, err)
	require.NoError(t, s.Accounts().Save(ctx, account.Account{ID: "a", CustomerID: c.ID}))

	assert.ErrorIs(t, s.Customers().Delete(ctx, c.ID), customer.ErrCustomerHasAccounts)
	_, err = s.Customers().Get(ctx, c.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Customers().Delete(ctx, 404), customer.ErrCustomerNotFound)
}
