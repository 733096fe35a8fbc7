package repository

import (
	"context"

	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

const operationOrder = "operation_date asc, id asc"

type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a gorm-backed append-only operation repository.
func NewOperationRepository(db *gorm.DB) repository.OperationRepository {
	return &operationRepository{db: db}
}

// Save implements repository.OperationRepository.
func (r *operationRepository) Save(ctx context.Context, op account.Operation) (account.Operation, error) {
	m := mapOperationDomainToModel(op)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return account.Operation{}, MapGormErrorToDomain(err)
	}
	return mapOperationModelToDomain(m), nil
}

// ListByAccount implements repository.OperationRepository.
func (r *operationRepository) ListByAccount(ctx context.Context, accountID string) ([]account.Operation, error) {
	var rows []AccountOperation
	err := r.db.WithContext(ctx).
		Where("bank_account_id = ?", accountID).
		Order(operationOrder).
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapOperationModels(rows), nil
}

// PageByAccount implements repository.OperationRepository.
func (r *operationRepository) PageByAccount(
	ctx context.Context,
	accountID string,
	page, size int,
) (repository.Page[account.Operation], error) {
	if page < 0 || size <= 0 {
		return repository.Page[account.Operation]{}, account.ErrInvalidPage
	}
	var total int64
	err := r.db.WithContext(ctx).
		Model(&AccountOperation{}).
		Where("bank_account_id = ?", accountID).
		Count(&total).Error
	if err != nil {
		return repository.Page[account.Operation]{}, MapGormErrorToDomain(err)
	}

	result := repository.Page[account.Operation]{
		Items:      []account.Operation{},
		Page:       page,
		Size:       size,
		TotalCount: total,
	}
	offset, ok := repository.PageOffset(page, size)
	if !ok || int64(offset) >= total {
		return result, nil
	}

	var rows []AccountOperation
	err = r.db.WithContext(ctx).
		Where("bank_account_id = ?", accountID).
		Order(operationOrder).
		Offset(offset).
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return repository.Page[account.Operation]{}, MapGormErrorToDomain(err)
	}
	result.Items = mapOperationModels(rows)
	return result, nil
}

func mapOperationModels(rows []AccountOperation) []account.Operation {
	result := make([]account.Operation, 0, len(rows))
	for _, m := range rows {
		result = append(result, mapOperationModelToDomain(m))
	}
	return result
}

func mapOperationModelToDomain(m AccountOperation) account.Operation {
	return account.Operation{
		ID:          m.ID,
		Date:        m.OperationDate,
		Amount:      m.Amount,
		Type:        account.OperationType(m.Type),
		Description: m.Description,
		AccountID:   m.BankAccountID,
	}
}

func mapOperationDomainToModel(op account.Operation) AccountOperation {
	return AccountOperation{
		ID:            op.ID,
		OperationDate: op.Date,
		Amount:        op.Amount,
		Type:          string(op.Type),
		Description:   op.Description,
		BankAccountID: op.AccountID,
	}
}
