package account

import "github.com/shopspring/decimal"

// floorFunc returns the lowest balance a debit may leave on an account.
type floorFunc func(Account) decimal.Decimal

// floors is the only place with variant-specific balance policy.
var floors = map[Kind]floorFunc{
	KindCurrent: func(a Account) decimal.Decimal { return a.OverDraft.Neg() },
	KindSaving:  func(Account) decimal.Decimal { return decimal.Zero },
}

// MinimumBalance returns the floor of the account's variant.
func MinimumBalance(a Account) (decimal.Decimal, error) {
	floor, ok := floors[a.Kind]
	if !ok {
		return decimal.Zero, ErrUnknownAccountKind
	}
	return floor(a), nil
}

// ValidateAmount rejects zero and negative operation amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDebit checks that amount is positive and that the projected balance stays
// at or above the account floor. It returns the projected balance.
func ValidateDebit(a Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	floor, err := MinimumBalance(a)
	if err != nil {
		return decimal.Zero, err
	}
	projected := a.Balance.Sub(amount)
	if projected.LessThan(floor) {
		return decimal.Zero, ErrInsufficientBalance
	}
	return projected, nil
}

// ValidateCredit checks that amount is positive and returns the projected balance.
func ValidateCredit(a Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return a.Balance.Add(amount), nil
}

// CanDebit reports whether a debit of amount keeps the account at or above its floor.
func CanDebit(a Account, amount decimal.Decimal) bool {
	_, err := ValidateDebit(a, amount)
	return err == nil
}
