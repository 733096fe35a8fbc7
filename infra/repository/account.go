package repository

import (
	"context"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a gorm-backed account repository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id string) (account.Account, error) {
	var m BankAccount
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return account.Account{}, mapNotFound(err, account.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(m), nil
}

// GetForUpdate implements repository.AccountRepository with SELECT ... FOR UPDATE.
func (r *accountRepository) GetForUpdate(ctx context.Context, id string) (account.Account, error) {
	var m BankAccount
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return account.Account{}, mapNotFound(err, account.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(m), nil
}

// Save implements repository.AccountRepository as an upsert on id.
func (r *accountRepository) Save(ctx context.Context, a account.Account) error {
	m := mapAccountDomainToModel(a)
	return MapGormErrorToDomain(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "status", "updated_at"}),
		}).
		Create(&m).Error)
}

// List implements repository.AccountRepository.
func (r *accountRepository) List(ctx context.Context) ([]account.Account, error) {
	var rows []BankAccount
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModels(rows), nil
}

// ListByCustomer implements repository.AccountRepository.
func (r *accountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]account.Account, error) {
	var rows []BankAccount
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountModels(rows), nil
}

func mapAccountModels(rows []BankAccount) []account.Account {
	result := make([]account.Account, 0, len(rows))
	for _, m := range rows {
		result = append(result, mapAccountModelToDomain(m))
	}
	return result
}

// mapAccountModelToDomain maps a GORM row to the domain value.
func mapAccountModelToDomain(m BankAccount) account.Account {
	return account.Account{
		ID:             m.ID,
		Kind:           account.Kind(m.Type),
		CreatedAt:      m.CreatedAt,
		Balance:        m.Balance,
		InitialBalance: m.InitialBalance,
		Currency:       m.Currency,
		Status:         account.Status(m.Status),
		CustomerID:     m.CustomerID,
		OverDraft:      m.OverDraft.Decimal,
		InterestRate:   m.InterestRate.Decimal,
	}
}

// mapAccountDomainToModel maps the domain value to a GORM row, leaving the
// other variant's column NULL.
func mapAccountDomainToModel(a account.Account) BankAccount {
	m := BankAccount{
		ID:             a.ID,
		Type:           string(a.Kind),
		CreatedAt:      a.CreatedAt,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Currency:       a.Currency,
		Status:         string(a.Status),
		CustomerID:     a.CustomerID,
	}
	switch a.Kind {
	case account.KindCurrent:
		m.OverDraft = decimal.NewNullDecimal(a.OverDraft)
	case account.KindSaving:
		m.InterestRate = decimal.NewNullDecimal(a.InterestRate)
	}
	return m
}
