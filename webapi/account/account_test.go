package account_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/pkg/dto"
	"github.com/ebank/ledger/webapi/middleware"
	"github.com/ebank/ledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	suite.Suite
	app      *fiber.App
	ledger   *app.App
	customer int64
}

func (s *AccountTestSuite) SetupTest() {
	s.app, s.ledger = testutils.NewTestApp(s.T(), testutils.Config())
	c, err := s.ledger.CustomerService.Save(s.T().Context(), "khadija", "khadija@gmail.com")
	s.Require().NoError(err)
	s.customer = c.ID
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (s *AccountTestSuite) openCurrent(initial, overDraft int64) dto.AccountRead {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/current", fiber.Map{
		"customerId":     s.customer,
		"initialBalance": initial,
		"overDraft":      overDraft,
	}, nil)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var acc dto.AccountRead
	testutils.Decode(s.T(), resp, &acc)
	return acc
}

func (s *AccountTestSuite) openSaving(initial int64) dto.AccountRead {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/saving", fiber.Map{
		"customerId":     s.customer,
		"initialBalance": initial,
		"interestRate":   "5.5",
	}, nil)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var acc dto.AccountRead
	testutils.Decode(s.T(), resp, &acc)
	return acc
}

func (s *AccountTestSuite) debit(id string, amount any, headers map[string]string) *http.Response {
	return testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/debit", fiber.Map{
		"accountId":   id,
		"amount":      amount,
		"description": "atm",
	}, headers)
}

func (s *AccountTestSuite) TestCreateAccounts() {
	current := s.openCurrent(1000, 500)
	s.Equal("CurrentAccount", current.Type)
	s.Equal("MAD", current.Currency)
	s.Require().NotNil(current.OverDraft)
	s.True(current.OverDraft.Equal(decimal.NewFromInt(500)))

	saving := s.openSaving(200)
	s.Equal("SavingAccount", saving.Type)
	s.Require().NotNil(saving.InterestRate)

	s.Run("unknown customer", func() {
		resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/current", fiber.Map{
			"customerId": 999, "initialBalance": 0, "overDraft": 0,
		}, nil)
		s.Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("missing customer id", func() {
		resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/saving", fiber.Map{
			"initialBalance": 0,
		}, nil)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	var accs []dto.AccountRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts", nil, nil), &accs)
	s.Len(accs, 2)
}

func (s *AccountTestSuite) TestDebitFloorScenario() {
	acc := s.openCurrent(1000, 500)

	resp := s.debit(acc.ID, 600, nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	resp = s.debit(acc.ID, "600", nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.debit(acc.ID, 400, nil)
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	pd := testutils.Problem(s.T(), resp)
	s.Contains(pd.Detail, "insufficient balance")

	var got dto.AccountRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts/"+acc.ID, nil, nil), &got)
	s.True(got.Balance.Equal(decimal.NewFromInt(-200)), got.Balance.String())
}

func (s *AccountTestSuite) TestInvalidRequests() {
	acc := s.openSaving(100)

	s.Equal(fiber.StatusBadRequest, s.debit(acc.ID, 0, nil).StatusCode)
	s.Equal(fiber.StatusBadRequest, s.debit(acc.ID, -5, nil).StatusCode)
	s.Equal(fiber.StatusBadRequest, s.debit("not-a-uuid", 5, nil).StatusCode)
	s.Equal(fiber.StatusNotFound,
		s.debit("7b1f5e8e-3f5b-4c7e-9b8a-2f4d5e6a7b8c", 5, nil).StatusCode)
	s.Equal(fiber.StatusBadRequest,
		testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts/nope", nil, nil).StatusCode)
}

func (s *AccountTestSuite) TestCreditAndTransfer() {
	src := s.openCurrent(100, 0)
	dst := s.openSaving(0)

	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/credit", fiber.Map{
		"accountId": src.ID, "amount": 50, "description": "salary",
	}, nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/transfer", fiber.Map{
		"accountSource": src.ID, "accountDestination": dst.ID, "amount": 120,
	}, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var tr dto.TransferRead
	testutils.Decode(s.T(), resp, &tr)
	s.Equal("DEBIT", tr.Debit.Type)
	s.Equal("CREDIT", tr.Credit.Type)
	s.Equal("Transfer to "+dst.ID, tr.Debit.Description)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/transfer", fiber.Map{
		"accountSource": src.ID, "accountDestination": dst.ID, "amount": 1000,
	}, nil)
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/transfer", fiber.Map{
		"accountSource": src.ID, "accountDestination": src.ID, "amount": 1,
	}, nil)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	var rec dto.ReconciliationRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts/"+src.ID+"/reconcile", nil, nil), &rec)
	s.True(rec.Consistent)
	s.Equal(2, rec.Operations)
	s.True(rec.Stored.Equal(decimal.NewFromInt(30)))
}

func (s *AccountTestSuite) TestHistoryPaging() {
	acc := s.openSaving(0)
	for i := 1; i <= 12; i++ {
		resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/credit", fiber.Map{
			"accountId": acc.ID, "amount": i, "description": fmt.Sprintf("op %d", i),
		}, nil)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	}

	var all []dto.OperationRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts/"+acc.ID+"/history", nil, nil), &all)
	s.Len(all, 12)

	var h dto.HistoryRead
	path := "/accounts/" + acc.ID + "/pageOperations?page=2"
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, nil), &h)
	s.Equal(5, h.PageSize)
	s.Equal(3, h.TotalPages)
	s.Equal(int64(12), h.TotalCount)
	s.Len(h.Operations, 2)
	s.Equal("op 11", h.Operations[0].Description)

	path = "/accounts/" + acc.ID + "/pageOperations?page=9&size=5"
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, nil), &h)
	s.Empty(h.Operations)

	var far dto.HistoryRead
	path = "/accounts/" + acc.ID + "/pageOperations?page=4611686018427387904&size=3"
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	testutils.Decode(s.T(), resp, &far)
	s.Empty(far.Operations)
	s.Equal(int64(12), far.TotalCount)
	s.Equal(4, far.TotalPages)

	path = "/accounts/" + acc.ID + "/pageOperations?page=-1"
	s.Equal(fiber.StatusBadRequest, testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, nil).StatusCode)
	path = "/accounts/" + acc.ID + "/pageOperations?size=0"
	s.Equal(fiber.StatusBadRequest, testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, nil).StatusCode)
}

func (s *AccountTestSuite) TestIdempotentDebit() {
	acc := s.openCurrent(100, 0)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "debit-1"}

	first := s.debit(acc.ID, 30, headers)
	s.Equal(fiber.StatusOK, first.StatusCode)
	second := s.debit(acc.ID, 30, headers)
	s.Equal(fiber.StatusOK, second.StatusCode)
	s.Equal("true", second.Header.Get(middleware.ReplayedHeader))

	var got dto.AccountRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/accounts/"+acc.ID, nil, nil), &got)
	s.True(got.Balance.Equal(decimal.NewFromInt(70)), got.Balance.String())
}
