// Package customer provides business logic for customer management.
package customer

import (
	"context"
	"log/slog"

	"github.com/ebank/ledger/pkg/domain/customer"
	"github.com/ebank/ledger/pkg/repository"
)

// Service provides customer CRUD and search.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// Save creates a customer and returns it with its assigned ID.
func (s *Service) Save(ctx context.Context, name, email string) (c customer.Customer, err error) {
	logger := s.logger.With("name", name)
	logger.Info("SaveCustomer started")

	c, err = customer.New(name, email)
	if err != nil {
		logger.Error("SaveCustomer failed: invalid customer", "error", err)
		return customer.Customer{}, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err = uow.Customers().Create(ctx, c)
		return err
	})
	if err != nil {
		logger.Error("SaveCustomer failed: repo create error", "error", err)
		return customer.Customer{}, err
	}
	logger.Info("SaveCustomer successful", "customerID", c.ID)
	return c, nil
}

// Get returns the customer or customer.ErrCustomerNotFound.
func (s *Service) Get(ctx context.Context, id int64) (c customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err = uow.Customers().Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("GetCustomer failed", "customerID", id, "error", err)
		return customer.Customer{}, err
	}
	return c, nil
}

// List returns every customer.
func (s *Service) List(ctx context.Context) (cs []customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cs, err = uow.Customers().List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("ListCustomers failed", "error", err)
		return nil, err
	}
	return cs, nil
}

// Search returns customers whose name contains keyword, ignoring case.
func (s *Service) Search(ctx context.Context, keyword string) (cs []customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cs, err = uow.Customers().Search(ctx, keyword)
		return err
	})
	if err != nil {
		s.logger.Error("SearchCustomers failed", "keyword", keyword, "error", err)
		return nil, err
	}
	return cs, nil
}

// Update replaces the name and email of an existing customer.
func (s *Service) Update(ctx context.Context, id int64, name, email string) (c customer.Customer, err error) {
	logger := s.logger.With("customerID", id)
	logger.Info("UpdateCustomer started")

	c, err = customer.New(name, email)
	if err != nil {
		logger.Error("UpdateCustomer failed: invalid customer", "error", err)
		return customer.Customer{}, err
	}
	c.ID = id
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Customers().Update(ctx, c)
	})
	if err != nil {
		logger.Error("UpdateCustomer failed: repo update error", "error", err)
		return customer.Customer{}, err
	}
	logger.Info("UpdateCustomer successful")
	return c, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id int64) error {
	logger := s.logger.With("customerID", id)
	logger.Info("DeleteCustomer started")

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Customers().Delete(ctx, id)
	})
	if err != nil {
		logger.Error("DeleteCustomer failed: repo delete error", "error", err)
		return err
	}
	logger.Info("DeleteCustomer successful")
	return nil
}
