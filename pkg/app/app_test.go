package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	infraeventbus "github.com/ebank/ledger/infra/eventbus"
	"github.com/ebank/ledger/infra/memory"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Ledger: &config.Ledger{DefaultCurrency: "EUR", TransferMode: config.TransferModeAtomic, PageSize: 5},
	}
}

func TestNew_WiresServicesAndHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infraeventbus.NewWithMemory(logger)
	a := New(&Deps{Uow: memory.NewStore(), EventBus: bus, Logger: logger}, testConfig())

	require.NotNil(t, a.AccountService)
	require.NotNil(t, a.CustomerService)

	ctx := context.Background()
	c, err := a.CustomerService.Save(ctx, "khadija", "khadija@gmail.com")
	require.NoError(t, err)
	acc, err := a.AccountService.CreateCurrentAccount(ctx, decimal.NewFromInt(100), decimal.NewFromInt(50), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", acc.Currency)

	published := bus.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.AccountOpenedType, published[0].Type())
}

func TestNew_NilBus(t *testing.T) {
	a := New(&Deps{Uow: memory.NewStore()}, testConfig())
	require.NotNil(t, a.Deps.Logger)
	_, err := a.AccountService.ListAccounts(context.Background())
	assert.NoError(t, err)
}
