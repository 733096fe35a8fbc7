package dto

import (
	"time"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// OperationRead is the API view of one ledger operation.
type OperationRead struct {
	ID          int64           `json:"id"`
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"operationDate"`
}

func ToOperationRead(op account.Operation) OperationRead {
	return OperationRead{
		ID:          op.ID,
		AccountID:   op.AccountID,
		Type:        string(op.Type),
		Amount:      op.Amount,
		Description: op.Description,
		Date:        op.Date,
	}
}

func ToOperationReads(ops []account.Operation) []OperationRead {
	out := make([]OperationRead, 0, len(ops))
	for _, op := range ops {
		out = append(out, ToOperationRead(op))
	}
	return out
}

// HistoryRead is one page of an account history.
type HistoryRead struct {
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	CurrentPage int             `json:"currentPage"`
	PageSize    int             `json:"pageSize"`
	TotalPages  int             `json:"totalPages"`
	TotalCount  int64           `json:"totalCount"`
	Operations  []OperationRead `json:"accountOperationDTOS"`
}

func ToHistoryRead(h account.History) HistoryRead {
	return HistoryRead{
		AccountID:   h.AccountID,
		Type:        h.Kind.String(),
		Balance:     h.Balance,
		CurrentPage: h.CurrentPage,
		PageSize:    h.PageSize,
		TotalPages:  h.TotalPages,
		TotalCount:  h.TotalCount,
		Operations:  ToOperationReads(h.Operations),
	}
}

// TransferRead holds both legs of a transfer.
type TransferRead struct {
	Debit  OperationRead `json:"debit"`
	Credit OperationRead `json:"credit"`
}

// ReconciliationRead reports whether the stored balance matches the log.
type ReconciliationRead struct {
	AccountID  string          `json:"accountId"`
	Stored     decimal.Decimal `json:"storedBalance"`
	Replayed   decimal.Decimal `json:"replayedBalance"`
	Drift      decimal.Decimal `json:"drift"`
	Operations int             `json:"operations"`
	Consistent bool            `json:"consistent"`
}

func ToReconciliationRead(r account.Reconciliation) ReconciliationRead {
	return ReconciliationRead{
		AccountID:  r.AccountID,
		Stored:     r.Stored,
		Replayed:   r.Replayed,
		Drift:      r.Drift,
		Operations: r.Operations,
		Consistent: r.Consistent(),
	}
}
