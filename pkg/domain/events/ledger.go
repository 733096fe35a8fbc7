package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types published after a unit of work commits.
const (
	AccountOpenedType     = "account.opened"
	OperationRecordedType = "operation.recorded"
	TransferCompletedType = "transfer.completed"
)

// AccountOpened is emitted when a current or saving account is created.
type AccountOpened struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      string          `json:"accountId"`
	Kind           string          `json:"kind"`
	CustomerID     int64           `json:"customerId"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Currency       string          `json:"currency"`
	Timestamp      time.Time       `json:"timestamp"`
}

func (AccountOpened) Type() string { return AccountOpenedType }

func (e AccountOpened) EventID() string { return e.ID.String() }

// PartitionKey groups all events of one account.
func (e AccountOpened) PartitionKey() string { return e.AccountID }

// OperationRecorded is emitted for every debit or credit appended to the log.
type OperationRecorded struct {
	ID          uuid.UUID       `json:"id"`
	OperationID int64           `json:"operationId"`
	AccountID   string          `json:"accountId"`
	Operation   string          `json:"operation"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (OperationRecorded) Type() string { return OperationRecordedType }

func (e OperationRecorded) EventID() string { return e.ID.String() }

func (e OperationRecorded) PartitionKey() string { return e.AccountID }

// TransferCompleted is emitted once both legs of a transfer are committed.
type TransferCompleted struct {
	ID            uuid.UUID       `json:"id"`
	SourceID      string          `json:"sourceId"`
	DestinationID string          `json:"destinationId"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

func (TransferCompleted) Type() string { return TransferCompletedType }

func (e TransferCompleted) EventID() string { return e.ID.String() }

func (e TransferCompleted) PartitionKey() string { return e.SourceID }
