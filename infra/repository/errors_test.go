package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ebank/ledger/pkg/domain"
	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	plain := errors.New("some other error")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"nil error returns nil", nil, nil},
		{"duplicate key maps to ErrAlreadyExists", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"record not found maps to ErrNotFound", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"foreign key maps to ErrValidation", gorm.ErrForeignKeyViolated, domain.ErrValidation},
		{"non-GORM error returns original", plain, plain},
		{"joined error maps", errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), domain.ErrAlreadyExists},
		{"wrapped error maps", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestMapNotFound(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, mapNotFound(gorm.ErrRecordNotFound, account.ErrAccountNotFound), account.ErrAccountNotFound)
	assert.ErrorIs(t, mapNotFound(gorm.ErrRecordNotFound, customer.ErrCustomerNotFound), customer.ErrCustomerNotFound)
	assert.ErrorIs(t, mapNotFound(gorm.ErrDuplicatedKey, account.ErrAccountNotFound), domain.ErrAlreadyExists)
	assert.NoError(t, mapNotFound(nil, account.ErrAccountNotFound))
}
