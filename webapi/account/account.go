package account

import (
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/dto"
	accountsvc "github.com/ebank/ledger/pkg/service/account"
	"github.com/ebank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for the account ledger.
//
// Routes:
//   - GET    /accounts                       : List every account.
//   - GET    /accounts/:id                   : Retrieve one account.
//   - GET    /accounts/:id/history           : Full operation history.
//   - GET    /accounts/:id/pageOperations    : One page of the history (?page=0&size=5).
//   - GET    /accounts/:id/reconcile         : Compare the stored balance with the log.
//   - POST   /accounts/current               : Open a current account.
//   - POST   /accounts/saving                : Open a saving account.
//   - POST   /accounts/debit                 : Debit an account.
//   - POST   /accounts/credit                : Credit an account.
//   - POST   /accounts/transfer              : Transfer between two accounts.
//
// idempotency guards the POST routes.
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	cfg *config.App,
	idempotency fiber.Handler,
) {
	pageSize := 5
	if cfg != nil && cfg.Ledger != nil && cfg.Ledger.PageSize > 0 {
		pageSize = cfg.Ledger.PageSize
	}
	g := app.Group("/accounts")
	g.Get("/", ListAccounts(accountSvc))
	g.Get("/:id", GetAccount(accountSvc))
	g.Get("/:id/history", GetHistory(accountSvc))
	g.Get("/:id/pageOperations", GetHistoryPage(accountSvc, pageSize))
	g.Get("/:id/reconcile", Reconcile(accountSvc))
	g.Post("/current", idempotency, CreateCurrentAccount(accountSvc))
	g.Post("/saving", idempotency, CreateSavingAccount(accountSvc))
	g.Post("/debit", idempotency, Debit(accountSvc))
	g.Post("/credit", idempotency, Credit(accountSvc))
	g.Post("/transfer", idempotency, Transfer(accountSvc))
}

func parseAccountID(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
	}
	return id.String(), nil
}

// ListAccounts returns a Fiber handler listing every account.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Accounts fetched"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /accounts [get]
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accs, err := accountSvc.ListAccounts(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", dto.ToAccountReads(accs))
	}
}

// GetAccount returns a Fiber handler for one account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id} [get]
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if id == "" {
			return err
		}
		acc, err := accountSvc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", dto.ToAccountRead(acc))
	}
}

// GetHistory returns a Fiber handler for the full history of an account.
// @Summary Full account history
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "History fetched"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id}/history [get]
func GetHistory(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if id == "" {
			return err
		}
		ops, err := accountSvc.GetAccountHistory(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched", dto.ToOperationReads(ops))
	}
}

// GetHistoryPage returns a Fiber handler for one page of an account history.
// @Summary Paged account history
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size" default(5)
// @Success 200 {object} common.Response "History page fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid page"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id}/pageOperations [get]
func GetHistoryPage(accountSvc *accountsvc.Service, defaultSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if id == "" {
			return err
		}
		page, err := common.QueryInt(c, "page", 0)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid page", err)
		}
		size, err := common.QueryInt(c, "size", defaultSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid page size", err)
		}
		h, err := accountSvc.GetAccountHistoryPage(c.UserContext(), id, page, size)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get history page", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History page fetched", dto.ToHistoryRead(h))
	}
}

// Reconcile returns a Fiber handler replaying the log of an account.
// @Summary Reconcile an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Account reconciled"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id}/reconcile [get]
func Reconcile(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if id == "" {
			return err
		}
		r, err := accountSvc.Reconcile(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to reconcile account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account reconciled", dto.ToReconciliationRead(r))
	}
}

// CreateCurrentAccount returns a Fiber handler opening a current account.
// @Summary Open a current account
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key"
// @Param request body CreateCurrentAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /accounts/current [post]
func CreateCurrentAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCurrentAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		acc, err := accountSvc.CreateCurrentAccount(c.UserContext(), input.InitialBalance, input.OverDraft, input.CustomerID)
		if err != nil {
			log.Errorf("Failed to create current account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", dto.ToAccountRead(acc))
	}
}

// CreateSavingAccount returns a Fiber handler opening a saving account.
// @Summary Open a saving account
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key"
// @Param request body CreateSavingAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /accounts/saving [post]
func CreateSavingAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateSavingAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		acc, err := accountSvc.CreateSavingAccount(c.UserContext(), input.InitialBalance, input.InterestRate, input.CustomerID)
		if err != nil {
			log.Errorf("Failed to create saving account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", dto.ToAccountRead(acc))
	}
}

// Debit returns a Fiber handler withdrawing from an account.
// @Summary Debit an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key"
// @Param request body OperationRequest true "Debit details"
// @Success 200 {object} common.Response "Debit successful"
// @Failure 400 {object} common.ProblemDetails "Invalid amount"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient balance"
// @Router /accounts/debit [post]
func Debit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OperationRequest](c)
		if input == nil {
			return err // error response already written
		}
		op, err := accountSvc.Debit(c.UserContext(), input.AccountID, input.Amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to debit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Debit successful", dto.ToOperationRead(op))
	}
}

// Credit returns a Fiber handler depositing into an account.
// @Summary Credit an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key"
// @Param request body OperationRequest true "Credit details"
// @Success 200 {object} common.Response "Credit successful"
// @Failure 400 {object} common.ProblemDetails "Invalid amount"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/credit [post]
func Credit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OperationRequest](c)
		if input == nil {
			return err // error response already written
		}
		op, err := accountSvc.Credit(c.UserContext(), input.AccountID, input.Amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to credit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Credit successful", dto.ToOperationRead(op))
	}
}

// Transfer returns a Fiber handler moving funds between two accounts.
// @Summary Transfer funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay key"
// @Param request body TransferRequest true "Transfer details"
// @Success 200 {object} common.Response "Transfer successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient balance"
// @Router /accounts/transfer [post]
func Transfer(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err // error response already written
		}
		res, err := accountSvc.Transfer(c.UserContext(), input.AccountSource, input.AccountDestination, input.Amount)
		if err != nil {
			log.Errorf("Transfer failed: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", dto.TransferRead{
			Debit:  dto.ToOperationRead(res.Debit),
			Credit: dto.ToOperationRead(res.Credit),
		})
	}
}
