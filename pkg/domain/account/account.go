package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when a debit would take the balance below the account floor.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a debit or credit amount is zero or negative,
	// or when an overdraft limit or interest rate is negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSameAccountTransfer is returned when a transfer names the same account twice.
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")

	// ErrInvalidPage is returned for a negative page index or a non-positive page size.
	ErrInvalidPage = errors.New("invalid page request")

	// ErrTransferReversed is returned when the credit leg of a transfer failed
	// and the debit leg was compensated.
	ErrTransferReversed = errors.New("transfer reversed")

	// ErrUnknownAccountKind is returned when no floor rule exists for an account kind.
	ErrUnknownAccountKind = errors.New("unknown account kind")
)

// Kind discriminates the account variants. The values match the persisted discriminator column.
type Kind string

const (
	KindCurrent Kind = "CA"
	KindSaving  Kind = "SA"
)

// String returns the variant name used in API payloads.
func (k Kind) String() string {
	switch k {
	case KindCurrent:
		return "CurrentAccount"
	case KindSaving:
		return "SavingAccount"
	default:
		return string(k)
	}
}

// Status is the account lifecycle status. Only StatusCreated is assigned today.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusActivated Status = "ACTIVATED"
	StatusSuspended Status = "SUSPENDED"
)

// Account is a value snapshot of a bank account.
//
// The shared fields live on the struct itself; OverDraft is meaningful only for
// KindCurrent and InterestRate only for KindSaving.
//
// Invariant: Balance == InitialBalance + sum(credits) - sum(debits) of the account's operations.
type Account struct {
	ID             string
	Kind           Kind
	CreatedAt      time.Time
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	Currency       string
	Status         Status
	CustomerID     int64

	OverDraft    decimal.Decimal
	InterestRate decimal.Decimal
}

// IsCurrent reports whether the account is a current account.
func (a Account) IsCurrent() bool { return a.Kind == KindCurrent }

// IsSaving reports whether the account is a saving account.
func (a Account) IsSaving() bool { return a.Kind == KindSaving }

// Builder provides a fluent API for constructing new Account values.
type Builder struct {
	kind           Kind
	customerID     int64
	initialBalance decimal.Decimal
	currency       string
	overDraft      decimal.Decimal
	interestRate   decimal.Decimal
	createdAt      time.Time
}

// NewCurrent starts a builder for a current account with the given overdraft allowance.
func NewCurrent(overDraft decimal.Decimal) *Builder {
	return &Builder{kind: KindCurrent, overDraft: overDraft, createdAt: time.Now()}
}

// NewSaving starts a builder for a saving account with the given interest rate.
func NewSaving(interestRate decimal.Decimal) *Builder {
	return &Builder{kind: KindSaving, interestRate: interestRate, createdAt: time.Now()}
}

// WithCustomerID sets the owning customer.
func (b *Builder) WithCustomerID(id int64) *Builder {
	b.customerID = id
	return b
}

// WithInitialBalance sets the seed balance. No floor check is applied to it.
func (b *Builder) WithInitialBalance(balance decimal.Decimal) *Builder {
	b.initialBalance = balance
	return b
}

// WithCurrency sets the account currency code.
func (b *Builder) WithCurrency(code string) *Builder {
	b.currency = code
	return b
}

// WithCreatedAt overrides the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build assigns a fresh id and CREATED status and validates the variant fields.
func (b *Builder) Build() (Account, error) {
	if _, ok := floors[b.kind]; !ok {
		return Account{}, ErrUnknownAccountKind
	}
	if b.overDraft.IsNegative() || b.interestRate.IsNegative() {
		return Account{}, ErrInvalidAmount
	}
	if b.customerID == 0 {
		return Account{}, errors.New("customerID is required")
	}
	return Account{
		ID:             uuid.NewString(),
		Kind:           b.kind,
		CreatedAt:      b.createdAt,
		Balance:        b.initialBalance,
		InitialBalance: b.initialBalance,
		Currency:       b.currency,
		Status:         StatusCreated,
		CustomerID:     b.customerID,
		OverDraft:      b.overDraft,
		InterestRate:   b.interestRate,
	}, nil
}
