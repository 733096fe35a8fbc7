package account

import (
	"context"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/events"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recorded is an appended operation together with the balance it produced.
type recorded struct {
	op      account.Operation
	balance decimal.Decimal
}

// applyDebit locks the account, checks the floor, appends the DEBIT and then
// writes the new balance. It must run inside a unit of work.
func applyDebit(
	ctx context.Context,
	uow repository.UnitOfWork,
	id string,
	amount decimal.Decimal,
	description string,
) (recorded, error) {
	acc, err := uow.Accounts().GetForUpdate(ctx, id)
	if err != nil {
		return recorded{}, err
	}
	balance, err := account.ValidateDebit(acc, amount)
	if err != nil {
		return recorded{}, err
	}
	return record(ctx, uow, acc, account.Debit, amount, balance, description)
}

// applyCredit locks the account, appends the CREDIT and then writes the new
// balance. It must run inside a unit of work.
func applyCredit(
	ctx context.Context,
	uow repository.UnitOfWork,
	id string,
	amount decimal.Decimal,
	description string,
) (recorded, error) {
	acc, err := uow.Accounts().GetForUpdate(ctx, id)
	if err != nil {
		return recorded{}, err
	}
	balance, err := account.ValidateCredit(acc, amount)
	if err != nil {
		return recorded{}, err
	}
	return record(ctx, uow, acc, account.Credit, amount, balance, description)
}

func record(
	ctx context.Context,
	uow repository.UnitOfWork,
	acc account.Account,
	typ account.OperationType,
	amount, balance decimal.Decimal,
	description string,
) (recorded, error) {
	op, err := uow.Operations().Save(ctx, account.NewOperation(acc.ID, typ, amount, description))
	if err != nil {
		return recorded{}, err
	}
	acc.Balance = balance
	if err := uow.Accounts().Save(ctx, acc); err != nil {
		return recorded{}, err
	}
	return recorded{op: op, balance: balance}, nil
}

func (s *Service) emitRecorded(ctx context.Context, rec recorded) {
	s.emit(ctx, events.OperationRecorded{
		ID:          uuid.New(),
		OperationID: rec.op.ID,
		AccountID:   rec.op.AccountID,
		Operation:   string(rec.op.Type),
		Amount:      rec.op.Amount,
		Balance:     rec.balance,
		Description: rec.op.Description,
		Timestamp:   rec.op.Date,
	})
}

// emit publishes an event after commit. Failures are logged, never returned.
func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("Event emission failed", "type", e.Type(), "error", err)
	}
}
