package customer

import (
	"errors"
	"strings"
)

var (
	// ErrCustomerNotFound is returned when a customer cannot be found in the
	// repository.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNameRequired is returned when a customer is saved without a name.
	ErrNameRequired = errors.New("customer name cannot be empty")
	// ErrCustomerHasAccounts is returned when deleting a customer who still owns accounts.
	ErrCustomerHasAccounts = errors.New("customer still owns accounts")
)

// Customer is the owner of bank accounts. The ledger references customers by ID
// and never mutates them.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// New creates an unsaved customer; the ID is assigned by the store.
func New(name, email string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, ErrNameRequired
	}
	return Customer{Name: name, Email: strings.TrimSpace(email)}, nil
}

// Matches reports whether the customer name contains keyword, ignoring case.
func (c Customer) Matches(keyword string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(keyword))
}
