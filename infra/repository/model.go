package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a customer record in the database.
type Customer struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null;size:255"`
	Email     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string {
	return "customers"
}

// BankAccount is the single-table row for every account variant. Type holds the
// discriminator (CA or SA); OverDraft is set only for CA rows and InterestRate
// only for SA rows.
type BankAccount struct {
	ID             string              `gorm:"type:uuid;primaryKey"`
	Type           string              `gorm:"type:varchar(2);not null"`
	CreatedAt      time.Time           `gorm:"not null"`
	Balance        decimal.Decimal     `gorm:"type:numeric;not null"`
	InitialBalance decimal.Decimal     `gorm:"type:numeric;not null"`
	Currency       string              `gorm:"type:varchar(3);not null"`
	Status         string              `gorm:"type:varchar(16);not null"`
	CustomerID     int64               `gorm:"not null;index"`
	OverDraft      decimal.NullDecimal `gorm:"type:numeric"`
	InterestRate   decimal.NullDecimal `gorm:"type:numeric"`
	UpdatedAt      time.Time
}

// TableName specifies the table name for the BankAccount model.
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// AccountOperation represents a persisted ledger record. Rows are never updated.
type AccountOperation struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OperationDate time.Time       `gorm:"not null;index:idx_operations_account_date,priority:2"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	Type          string          `gorm:"type:varchar(6);not null"`
	Description   string          `gorm:"type:varchar(255)"`
	BankAccountID string          `gorm:"type:uuid;not null;index:idx_operations_account_date,priority:1"`
}

// TableName specifies the table name for the AccountOperation model.
func (AccountOperation) TableName() string {
	return "account_operations"
}
