// Package account provides the account ledger service: account creation,
// debit, credit, transfer, history and reconciliation. Every command runs in
// one unit of work; events are emitted only after the unit of work commits.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferMode selects how the two legs of a transfer are committed.
type TransferMode string

const (
	// TransferAtomic commits both legs in one unit of work.
	TransferAtomic TransferMode = "atomic"
	// TransferCompensating commits each leg separately and reverses the
	// debit with a compensating credit when the credit leg fails.
	TransferCompensating TransferMode = "compensating"
)

const defaultCurrency = "MAD"

// Config carries the ledger settings of the service.
type Config struct {
	Currency     string
	TransferMode TransferMode
}

// TransferResult holds both legs of a committed transfer.
type TransferResult struct {
	Debit  account.Operation
	Credit account.Operation
}

// Service provides business logic for the account ledger.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
	cfg    Config
}

// New creates a new Service. bus may be nil, in which case no events are emitted.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.TransferMode == "" {
		cfg.TransferMode = TransferAtomic
	}
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger,
		cfg:    cfg,
	}
}

// CreateCurrentAccount opens a current account for an existing customer.
// The initial balance is not checked against the overdraft floor.
func (s *Service) CreateCurrentAccount(
	ctx context.Context,
	initialBalance, overDraft decimal.Decimal,
	customerID int64,
) (account.Account, error) {
	return s.open(ctx, account.NewCurrent(overDraft), initialBalance, customerID)
}

// CreateSavingAccount opens a saving account for an existing customer.
func (s *Service) CreateSavingAccount(
	ctx context.Context,
	initialBalance, interestRate decimal.Decimal,
	customerID int64,
) (account.Account, error) {
	return s.open(ctx, account.NewSaving(interestRate), initialBalance, customerID)
}

func (s *Service) open(
	ctx context.Context,
	b *account.Builder,
	initialBalance decimal.Decimal,
	customerID int64,
) (acc account.Account, err error) {
	logger := s.logger.With("customerID", customerID, "initialBalance", initialBalance.String())
	logger.Info("CreateAccount started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Customers().Get(ctx, customerID); err != nil {
			return err
		}
		acc, err = b.WithCustomerID(customerID).
			WithInitialBalance(initialBalance).
			WithCurrency(s.cfg.Currency).
			Build()
		if err != nil {
			return err
		}
		return uow.Accounts().Save(ctx, acc)
	})
	if err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return account.Account{}, err
	}

	s.emit(ctx, events.AccountOpened{
		ID:             uuid.New(),
		AccountID:      acc.ID,
		Kind:           acc.Kind.String(),
		CustomerID:     acc.CustomerID,
		InitialBalance: acc.InitialBalance,
		Currency:       acc.Currency,
		Timestamp:      acc.CreatedAt,
	})
	logger.Info("CreateAccount successful", "accountID", acc.ID, "kind", acc.Kind)
	return acc, nil
}

// GetAccount returns a snapshot of the account.
func (s *Service) GetAccount(ctx context.Context, id string) (acc account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acc, err = uow.Accounts().Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("GetAccount failed", "accountID", id, "error", err)
		return account.Account{}, err
	}
	return acc, nil
}

// Debit withdraws amount from the account and appends a DEBIT operation.
// The balance may not drop below the floor of the account variant.
func (s *Service) Debit(
	ctx context.Context,
	id string,
	amount decimal.Decimal,
	description string,
) (account.Operation, error) {
	logger := s.logger.With("accountID", id, "amount", amount.String())
	logger.Info("Debit started")

	if err := account.ValidateAmount(amount); err != nil {
		logger.Error("Debit failed: invalid amount", "error", err)
		return account.Operation{}, err
	}
	if err := account.ValidateDescription(description); err != nil {
		logger.Error("Debit failed: invalid description", "error", err)
		return account.Operation{}, err
	}

	var rec recorded
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) (err error) {
		rec, err = applyDebit(ctx, uow, id, amount, description)
		return err
	})
	if err != nil {
		logger.Error("Debit failed", "error", err)
		return account.Operation{}, err
	}

	s.emitRecorded(ctx, rec)
	logger.Info("Debit successful", "operationID", rec.op.ID, "balance", rec.balance.String())
	return rec.op, nil
}

// Credit deposits amount into the account and appends a CREDIT operation.
func (s *Service) Credit(
	ctx context.Context,
	id string,
	amount decimal.Decimal,
	description string,
) (account.Operation, error) {
	logger := s.logger.With("accountID", id, "amount", amount.String())
	logger.Info("Credit started")

	if err := account.ValidateAmount(amount); err != nil {
		logger.Error("Credit failed: invalid amount", "error", err)
		return account.Operation{}, err
	}
	if err := account.ValidateDescription(description); err != nil {
		logger.Error("Credit failed: invalid description", "error", err)
		return account.Operation{}, err
	}

	var rec recorded
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) (err error) {
		rec, err = applyCredit(ctx, uow, id, amount, description)
		return err
	})
	if err != nil {
		logger.Error("Credit failed", "error", err)
		return account.Operation{}, err
	}

	s.emitRecorded(ctx, rec)
	logger.Info("Credit successful", "operationID", rec.op.ID, "balance", rec.balance.String())
	return rec.op, nil
}

// Transfer moves amount from sourceID to destinationID as a DEBIT on the
// source followed by a CREDIT on the destination.
func (s *Service) Transfer(
	ctx context.Context,
	sourceID, destinationID string,
	amount decimal.Decimal,
) (TransferResult, error) {
	logger := s.logger.With(
		"sourceID", sourceID,
		"destinationID", destinationID,
		"amount", amount.String(),
		"mode", s.cfg.TransferMode,
	)
	logger.Info("Transfer started")

	if sourceID == destinationID {
		logger.Error("Transfer failed: same account", "error", account.ErrSameAccountTransfer)
		return TransferResult{}, account.ErrSameAccountTransfer
	}
	if err := account.ValidateAmount(amount); err != nil {
		logger.Error("Transfer failed: invalid amount", "error", err)
		return TransferResult{}, err
	}

	var (
		debit, credit recorded
		err           error
	)
	if s.cfg.TransferMode == TransferCompensating {
		debit, credit, err = s.transferCompensating(ctx, logger, sourceID, destinationID, amount)
	} else {
		debit, credit, err = s.transferAtomic(ctx, sourceID, destinationID, amount)
	}
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return TransferResult{}, err
	}

	if s.cfg.TransferMode != TransferCompensating {
		s.emitRecorded(ctx, debit)
		s.emitRecorded(ctx, credit)
	}
	s.emit(ctx, events.TransferCompleted{
		ID:            uuid.New(),
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        amount,
		Timestamp:     time.Now(),
	})
	logger.Info("Transfer successful", "debitID", debit.op.ID, "creditID", credit.op.ID)
	return TransferResult{Debit: debit.op, Credit: credit.op}, nil
}

// transferAtomic locks both rows in ascending id order so that opposite
// transfers between the same pair cannot deadlock.
func (s *Service) transferAtomic(
	ctx context.Context,
	sourceID, destinationID string,
	amount decimal.Decimal,
) (debit, credit recorded, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		first, second := sourceID, destinationID
		if second < first {
			first, second = second, first
		}
		for _, id := range []string{first, second} {
			if _, err := uow.Accounts().GetForUpdate(ctx, id); err != nil {
				return err
			}
		}

		var err error
		if debit, err = applyDebit(ctx, uow, sourceID, amount, transferDebitDescription(destinationID)); err != nil {
			return err
		}
		credit, err = applyCredit(ctx, uow, destinationID, amount, transferCreditDescription(sourceID))
		return err
	})
	return
}

// transferCompensating commits the debit leg, then the credit leg. If the
// credit leg fails a compensating CREDIT is recorded on the source and the
// returned error wraps both account.ErrTransferReversed and the credit error.
func (s *Service) transferCompensating(
	ctx context.Context,
	logger *slog.Logger,
	sourceID, destinationID string,
	amount decimal.Decimal,
) (debit, credit recorded, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) (err error) {
		debit, err = applyDebit(ctx, uow, sourceID, amount, transferDebitDescription(destinationID))
		return err
	})
	if err != nil {
		return recorded{}, recorded{}, err
	}
	s.emitRecorded(ctx, debit)

	creditErr := s.uow.Do(ctx, func(uow repository.UnitOfWork) (err error) {
		credit, err = applyCredit(ctx, uow, destinationID, amount, transferCreditDescription(sourceID))
		return err
	})
	if creditErr == nil {
		s.emitRecorded(ctx, credit)
		return debit, credit, nil
	}

	logger.Warn("Transfer credit leg failed, reversing debit", "error", creditErr)
	var reversal recorded
	rctx := context.WithoutCancel(ctx)
	revErr := s.uow.Do(rctx, func(uow repository.UnitOfWork) (err error) {
		reversal, err = applyCredit(rctx, uow, sourceID, amount, "Transfer reversal: "+destinationID)
		return err
	})
	if revErr != nil {
		logger.Error("Transfer reversal failed", "error", revErr, "debitID", debit.op.ID)
		return recorded{}, recorded{}, errors.Join(creditErr, revErr)
	}
	s.emitRecorded(rctx, reversal)
	return recorded{}, recorded{}, errors.Join(account.ErrTransferReversed, creditErr)
}

// GetAccountHistory returns every operation of the account ordered by (date, id).
func (s *Service) GetAccountHistory(ctx context.Context, id string) (ops []account.Operation, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Accounts().Get(ctx, id); err != nil {
			return err
		}
		ops, err = uow.Operations().ListByAccount(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("GetAccountHistory failed", "accountID", id, "error", err)
		return nil, err
	}
	return ops, nil
}

// GetAccountHistoryPage returns the zero-based page of the account history.
// A page past the end yields no operations but correct totals.
func (s *Service) GetAccountHistoryPage(
	ctx context.Context,
	id string,
	page, size int,
) (h account.History, err error) {
	if page < 0 || size <= 0 {
		return account.History{}, account.ErrInvalidPage
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acc, err := uow.Accounts().Get(ctx, id)
		if err != nil {
			return err
		}
		p, err := uow.Operations().PageByAccount(ctx, id, page, size)
		if err != nil {
			return err
		}
		h = account.History{
			AccountID:   acc.ID,
			Kind:        acc.Kind,
			Balance:     acc.Balance,
			CurrentPage: page,
			PageSize:    size,
			TotalPages:  p.TotalPages(),
			TotalCount:  p.TotalCount,
			Operations:  p.Items,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("GetAccountHistoryPage failed", "accountID", id, "page", page, "size", size, "error", err)
		return account.History{}, err
	}
	return h, nil
}

// ListAccounts returns every account.
func (s *Service) ListAccounts(ctx context.Context) (accs []account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accs, err = uow.Accounts().List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("ListAccounts failed", "error", err)
		return nil, err
	}
	return accs, nil
}

// ListCustomerAccounts returns the accounts owned by one customer.
func (s *Service) ListCustomerAccounts(ctx context.Context, customerID int64) (accs []account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Customers().Get(ctx, customerID); err != nil {
			return err
		}
		accs, err = uow.Accounts().ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		s.logger.Error("ListCustomerAccounts failed", "customerID", customerID, "error", err)
		return nil, err
	}
	return accs, nil
}

// Reconcile recomputes the balance from the operation log and compares it
// with the stored balance.
func (s *Service) Reconcile(ctx context.Context, id string) (r account.Reconciliation, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acc, err := uow.Accounts().Get(ctx, id)
		if err != nil {
			return err
		}
		ops, err := uow.Operations().ListByAccount(ctx, id)
		if err != nil {
			return err
		}
		replayed := account.ReplayBalance(acc.InitialBalance, ops)
		r = account.Reconciliation{
			AccountID:  id,
			Stored:     acc.Balance,
			Replayed:   replayed,
			Drift:      acc.Balance.Sub(replayed),
			Operations: len(ops),
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Reconcile failed", "accountID", id, "error", err)
		return account.Reconciliation{}, err
	}
	if !r.Consistent() {
		s.logger.Warn("Reconcile found drift", "accountID", id, "drift", r.Drift.String())
	}
	return r, nil
}

func transferDebitDescription(destinationID string) string {
	return "Transfer to " + destinationID
}

func transferCreditDescription(sourceID string) string {
	return "transfer from " + sourceID
}
