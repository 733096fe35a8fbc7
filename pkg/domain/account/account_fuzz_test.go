package account

import (
	"testing"

	"github.com/shopspring/decimal"
)

func FuzzValidateDebitFloor(f *testing.F) {
	f.Add(int64(100000), int64(50000), int64(60000), true)
	f.Add(int64(0), int64(0), int64(1), false)
	f.Add(int64(-20000), int64(90000), int64(40000), true)

	f.Fuzz(func(t *testing.T, balanceCents, overDraftCents, amountCents int64, current bool) {
		if overDraftCents < 0 {
			overDraftCents = -overDraftCents
		}
		acc := Account{
			Kind:      KindSaving,
			Balance:   decimal.New(balanceCents, -2),
			OverDraft: decimal.New(overDraftCents, -2),
		}
		if current {
			acc.Kind = KindCurrent
		}
		amount := decimal.New(amountCents, -2)

		projected, err := ValidateDebit(acc, amount)
		if err != nil {
			return
		}
		floor, _ := MinimumBalance(acc)
		if projected.LessThan(floor) {
			t.Fatalf("debit of %s from %s breached floor %s", amount, acc.Balance, floor)
		}
		if !projected.Equal(acc.Balance.Sub(amount)) {
			t.Fatalf("projected %s != %s - %s", projected, acc.Balance, amount)
		}
	})
}
