package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a gorm-backed customer repository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Get implements repository.CustomerRepository.
func (r *customerRepository) Get(ctx context.Context, id int64) (customer.Customer, error) {
	var m Customer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return customer.Customer{}, mapNotFound(err, customer.ErrCustomerNotFound)
	}
	return mapCustomerModelToDomain(m), nil
}

// Create implements repository.CustomerRepository.
func (r *customerRepository) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	m := Customer{Name: c.Name, Email: c.Email}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return customer.Customer{}, MapGormErrorToDomain(err)
	}
	return mapCustomerModelToDomain(m), nil
}

// Update implements repository.CustomerRepository.
func (r *customerRepository) Update(ctx context.Context, c customer.Customer) error {
	res := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{"name": c.Name, "email": c.Email})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// Delete implements repository.CustomerRepository.
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Customer{}, id)
	if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
		return customer.ErrCustomerHasAccounts
	}
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// List implements repository.CustomerRepository.
func (r *customerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	var rows []Customer
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapCustomerModels(rows), nil
}

// Search implements repository.CustomerRepository.
func (r *customerRepository) Search(ctx context.Context, keyword string) ([]customer.Customer, error) {
	var rows []Customer
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapCustomerModels(rows), nil
}

func mapCustomerModels(rows []Customer) []customer.Customer {
	result := make([]customer.Customer, 0, len(rows))
	for _, m := range rows {
		result = append(result, mapCustomerModelToDomain(m))
	}
	return result
}

func mapCustomerModelToDomain(m Customer) customer.Customer {
	return customer.Customer{ID: m.ID, Name: m.Name, Email: m.Email}
}
