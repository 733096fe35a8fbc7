package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/webapi/testutils"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	color.NoColor = true
	_, a := testutils.NewTestApp(t, testutils.Config())
	return a
}

func half() float64 { return 0.5 }

func TestSeed(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, seed(ctx, a, &out, half))

	customers, err := a.CustomerService.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, len(demoCustomers))
	assert.Equal(t, "khadija", customers[0].Name)

	accs, err := a.AccountService.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accs, 2*len(demoCustomers))
	for _, acc := range accs {
		ops, err := a.AccountService.GetAccountHistory(ctx, acc.ID)
		require.NoError(t, err)
		assert.Len(t, ops, 10)
		// Credits and debits of the same amount cancel out.
		assert.True(t, acc.Balance.Equal(acc.InitialBalance), acc.Balance.String())
	}
	assert.Contains(t, out.String(), "customer 1 khadija")
}

func TestRun_Commands(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	require.NoError(t, seed(ctx, a, &bytes.Buffer{}, half))
	accs, err := a.AccountService.ListAccounts(ctx)
	require.NoError(t, err)
	id := accs[0].ID

	var out bytes.Buffer
	require.NoError(t, run(ctx, a, []string{"accounts"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(accs)+1)

	out.Reset()
	require.NoError(t, run(ctx, a, []string{"history", id}, &out))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 10)

	out.Reset()
	require.NoError(t, run(ctx, a, []string{"history", id, "1"}, &out))
	assert.Contains(t, out.String(), "page 1/2 (10 operations)")

	out.Reset()
	require.NoError(t, run(ctx, a, []string{"reconcile", id}, &out))
	assert.Contains(t, out.String(), "consistent")
}

func TestRun_Token(t *testing.T) {
	a := newApp(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), a, []string{"token", "-scope", "user,admin"}, &out))
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out.String()), "."))
}

func TestRun_Errors(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, run(ctx, a, []string{"history"}, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(ctx, a, []string{"history", "x", "first"}, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(ctx, a, []string{"reconcile"}, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(ctx, a, []string{"nope"}, &bytes.Buffer{}), errUsage)
	assert.Error(t, run(ctx, a, []string{"reconcile", "missing"}, &bytes.Buffer{}))
}
