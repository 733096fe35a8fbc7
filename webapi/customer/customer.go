// Package customer exposes the customer endpoints.
package customer

import (
	"strconv"

	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/dto"
	"github.com/ebank/ledger/pkg/service/account"
	"github.com/ebank/ledger/pkg/service/auth"
	customersvc "github.com/ebank/ledger/pkg/service/customer"
	"github.com/ebank/ledger/webapi/common"
	"github.com/ebank/ledger/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the customer endpoints. Reads need the USER scope and
// writes the ADMIN scope when auth is enabled.
func Routes(
	app *fiber.App,
	customerSvc *customersvc.Service,
	accountSvc *account.Service,
	cfg *config.App,
) {
	var authCfg *config.Auth
	if cfg != nil {
		authCfg = cfg.Auth
	}
	read := middleware.Protected(authCfg, auth.ScopeUser)
	write := middleware.Protected(authCfg, auth.ScopeAdmin)

	g := app.Group("/customers")
	g.Get("/", append(read, ListCustomers(customerSvc))...)
	g.Get("/search", append(read, SearchCustomers(customerSvc))...)
	g.Get("/:id", append(read, GetCustomer(customerSvc))...)
	g.Get("/:id/accounts", append(read, GetCustomerAccounts(accountSvc))...)
	g.Post("/", append(write, CreateCustomer(customerSvc))...)
	g.Put("/:id", append(write, UpdateCustomer(customerSvc))...)
	g.Delete("/:id", append(write, DeleteCustomer(customerSvc))...)
}

func parseCustomerID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer ID", "customer ID must be a positive integer")
	}
	return id, nil
}

// ListCustomers returns a Fiber handler listing every customer.
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {object} common.Response "Customers fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /customers [get]
// @Security Bearer
func ListCustomers(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := customerSvc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list customers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customers fetched", dto.ToCustomerReads(cs))
	}
}

// SearchCustomers returns a Fiber handler matching customers by name.
// @Summary Search customers
// @Tags customers
// @Produce json
// @Param keyword query string false "Case-insensitive name fragment"
// @Success 200 {object} common.Response "Customers fetched"
// @Router /customers/search [get]
// @Security Bearer
func SearchCustomers(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := customerSvc.Search(c.UserContext(), c.Query("keyword"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to search customers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customers fetched", dto.ToCustomerReads(cs))
	}
}

// GetCustomer returns a Fiber handler for one customer.
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} common.Response "Customer fetched"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id} [get]
// @Security Bearer
func GetCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCustomerID(c)
		if id == 0 {
			return err
		}
		cust, err := customerSvc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer fetched", dto.ToCustomerRead(cust))
	}
}

// GetCustomerAccounts returns a Fiber handler listing the accounts of a customer.
// @Summary List the accounts of a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} common.Response "Accounts fetched"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id}/accounts [get]
// @Security Bearer
func GetCustomerAccounts(accountSvc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCustomerID(c)
		if id == 0 {
			return err
		}
		accs, err := accountSvc.ListCustomerAccounts(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list customer accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", dto.ToAccountReads(accs))
	}
}

// CreateCustomer returns a Fiber handler registering a customer.
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerWrite true "Customer details"
// @Success 201 {object} common.Response "Customer created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 403 {object} common.ProblemDetails "Forbidden"
// @Router /customers [post]
// @Security Bearer
func CreateCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.CustomerWrite](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := customerSvc.Save(c.UserContext(), input.Name, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer created", dto.ToCustomerRead(cust))
	}
}

// UpdateCustomer returns a Fiber handler replacing a customer's name and email.
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body dto.CustomerWrite true "Customer details"
// @Success 200 {object} common.Response "Customer updated"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id} [put]
// @Security Bearer
func UpdateCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCustomerID(c)
		if id == 0 {
			return err
		}
		input, err := common.BindAndValidate[dto.CustomerWrite](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := customerSvc.Update(c.UserContext(), id, input.Name, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer updated", dto.ToCustomerRead(cust))
	}
}

// DeleteCustomer returns a Fiber handler removing a customer without accounts.
// @Summary Delete a customer
// @Tags customers
// @Param id path int true "Customer ID"
// @Success 204 "Customer deleted"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Failure 409 {object} common.ProblemDetails "Customer still owns accounts"
// @Router /customers/{id} [delete]
// @Security Bearer
func DeleteCustomer(customerSvc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCustomerID(c)
		if id == 0 {
			return err
		}
		if err := customerSvc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete customer", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
