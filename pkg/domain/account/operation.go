package account

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ebank/ledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the longest operation description the stores accept, in characters.
const MaxDescriptionLength = 255

// ErrDescriptionTooLong is returned when an operation description exceeds MaxDescriptionLength.
var ErrDescriptionTooLong = fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, MaxDescriptionLength)

// OperationType carries the direction of an operation; amounts are always positive.
type OperationType string

const (
	Debit  OperationType = "DEBIT"
	Credit OperationType = "CREDIT"
)

// Operation is one immutable ledger record against a single account.
// ID is assigned by the store on insert and increases monotonically.
type Operation struct {
	ID          int64
	Date        time.Time
	Amount      decimal.Decimal
	Type        OperationType
	Description string
	AccountID   string
}

// ValidateDescription rejects descriptions longer than MaxDescriptionLength.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// NewOperation creates an unsaved operation timestamped at now.
func NewOperation(accountID string, typ OperationType, amount decimal.Decimal, description string) Operation {
	return Operation{
		Date:        time.Now(),
		Amount:      amount,
		Type:        typ,
		Description: description,
		AccountID:   accountID,
	}
}

// Signed returns the amount with the sign implied by the operation type.
func (o Operation) Signed() decimal.Decimal {
	if o.Type == Debit {
		return o.Amount.Neg()
	}
	return o.Amount
}

// ReplayBalance recomputes a balance from the initial balance and the operation log.
func ReplayBalance(initial decimal.Decimal, ops []Operation) decimal.Decimal {
	balance := initial
	for _, op := range ops {
		balance = balance.Add(op.Signed())
	}
	return balance
}

// History is a bounded window of an account's operations plus paging metadata.
type History struct {
	AccountID   string
	Kind        Kind
	Balance     decimal.Decimal
	CurrentPage int
	PageSize    int
	TotalPages  int
	TotalCount  int64
	Operations  []Operation
}

// Reconciliation compares the stored balance against the balance replayed from the log.
type Reconciliation struct {
	AccountID  string
	Stored     decimal.Decimal
	Replayed   decimal.Decimal
	Drift      decimal.Decimal
	Operations int
}

// Consistent reports whether the stored balance matches the log.
func (r Reconciliation) Consistent() bool {
	return r.Drift.IsZero()
}
