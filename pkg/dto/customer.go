package dto

import "github.com/ebank/ledger/pkg/domain/customer"

// CustomerWrite is the body of customer create and update requests.
type CustomerWrite struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CustomerRead is the API view of a customer.
type CustomerRead struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToCustomerRead(c customer.Customer) CustomerRead {
	return CustomerRead{ID: c.ID, Name: c.Name, Email: c.Email}
}

func ToCustomerReads(cs []customer.Customer) []CustomerRead {
	out := make([]CustomerRead, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCustomerRead(c))
	}
	return out
}
