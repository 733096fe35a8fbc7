// Package app assembles the ledger services from their dependencies and
// subscribes the ledger event handlers.
package app

import (
	"log/slog"
	"time"

	"github.com/ebank/ledger/pkg/cache"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/handler/ledger"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/ebank/ledger/pkg/service/account"
	"github.com/ebank/ledger/pkg/service/customer"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow         repository.UnitOfWork
	EventBus    eventbus.Bus
	Idempotency cache.IdempotencyStore
	Logger      *slog.Logger
	// Close releases the infrastructure; may be nil.
	Close func() error
}

type App struct {
	Deps            *Deps
	Config          *config.App
	AccountService  *account.Service
	CustomerService *customer.Service
}

// defaultDedupWindow bounds how long a handled event id is remembered.
const defaultDedupWindow = 24 * time.Hour

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	a := &App{
		Deps:   deps,
		Config: cfg,
	}
	a.setupEventBus()

	a.AccountService = account.New(deps.Uow, deps.EventBus, deps.Logger, account.Config{
		Currency:     cfg.Ledger.DefaultCurrency,
		TransferMode: account.TransferMode(cfg.Ledger.TransferMode),
	})
	a.CustomerService = customer.New(deps.Uow, deps.Logger)
	return a
}

// setupEventBus registers the ledger event handlers with the bus.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	window := defaultDedupWindow
	if a.Config.Idempotency != nil && a.Config.Idempotency.TTL > 0 {
		window = a.Config.Idempotency.TTL
	}
	ledger.Register(a.Deps.EventBus, a.Deps.Logger, window)
}
