package dto

import (
	"encoding/json"
	"testing"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAccountRead_VariantFields(t *testing.T) {
	current, err := account.NewCurrent(decimal.NewFromInt(500)).
		WithCustomerID(1).
		WithInitialBalance(decimal.NewFromInt(1000)).
		Build()
	require.NoError(t, err)
	saving, err := account.NewSaving(decimal.NewFromFloat(5.5)).WithCustomerID(1).Build()
	require.NoError(t, err)

	cr := ToAccountRead(current)
	assert.Equal(t, "CurrentAccount", cr.Type)
	require.NotNil(t, cr.OverDraft)
	assert.True(t, cr.OverDraft.Equal(decimal.NewFromInt(500)))
	assert.Nil(t, cr.InterestRate)

	sr := ToAccountRead(saving)
	assert.Equal(t, "SavingAccount", sr.Type)
	assert.Nil(t, sr.OverDraft)
	require.NotNil(t, sr.InterestRate)

	raw, err := json.Marshal(sr)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "overDraft")
	assert.Contains(t, string(raw), `"interestRate":"5.5"`)
}

func TestToHistoryRead(t *testing.T) {
	h := account.History{
		AccountID:   "a",
		Kind:        account.KindCurrent,
		CurrentPage: 2,
		PageSize:    5,
		TotalPages:  3,
		TotalCount:  12,
		Operations: []account.Operation{
			{ID: 11, AccountID: "a", Type: account.Debit, Amount: decimal.NewFromInt(1)},
			{ID: 12, AccountID: "a", Type: account.Credit, Amount: decimal.NewFromInt(2)},
		},
	}
	r := ToHistoryRead(h)
	assert.Equal(t, "CurrentAccount", r.Type)
	assert.Equal(t, int64(12), r.TotalCount)
	require.Len(t, r.Operations, 2)
	assert.Equal(t, "CREDIT", r.Operations[1].Type)
}

func TestToReads_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, ToAccountReads(nil))
	assert.NotNil(t, ToOperationReads(nil))
	assert.NotNil(t, ToCustomerReads(nil))
}
