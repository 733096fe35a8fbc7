// Package dto holds the read models returned by the HTTP API and the CLI.
package dto

import (
	"time"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// AccountRead is the API view of a current or saving account. OverDraft is set
// only for current accounts and InterestRate only for saving accounts.
type AccountRead struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	CustomerID     int64            `json:"customerId"`
	Balance        decimal.Decimal  `json:"balance"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	Currency       string           `json:"currency"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	OverDraft      *decimal.Decimal `json:"overDraft,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
}

// ToAccountRead maps a domain account to its read model.
func ToAccountRead(a account.Account) AccountRead {
	r := AccountRead{
		ID:             a.ID,
		Type:           a.Kind.String(),
		CustomerID:     a.CustomerID,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Currency:       a.Currency,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
	switch {
	case a.IsCurrent():
		od := a.OverDraft
		r.OverDraft = &od
	case a.IsSaving():
		rate := a.InterestRate
		r.InterestRate = &rate
	}
	return r
}

// ToAccountReads maps a slice of accounts, never returning nil.
func ToAccountReads(accs []account.Account) []AccountRead {
	out := make([]AccountRead, 0, len(accs))
	for _, a := range accs {
		out = append(out, ToAccountRead(a))
	}
	return out
}
