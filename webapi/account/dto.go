package account

import "github.com/shopspring/decimal"

//revive:disable

// CreateCurrentAccountRequest represents the request body for opening a current account.
type CreateCurrentAccountRequest struct {
	CustomerID     int64           `json:"customerId" validate:"required,gt=0"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	OverDraft      decimal.Decimal `json:"overDraft"`
}

// CreateSavingAccountRequest represents the request body for opening a saving account.
type CreateSavingAccountRequest struct {
	CustomerID     int64           `json:"customerId" validate:"required,gt=0"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	InterestRate   decimal.Decimal `json:"interestRate"`
}

// OperationRequest represents the request body of a debit or a credit.
type OperationRequest struct {
	AccountID   string          `json:"accountId" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=255"`
}

// TransferRequest represents the request body for transferring funds between accounts.
type TransferRequest struct {
	AccountSource      string          `json:"accountSource" validate:"required,uuid"`
	AccountDestination string          `json:"accountDestination" validate:"required,uuid"`
	Amount             decimal.Decimal `json:"amount"`
}
