package customer_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/dto"
	"github.com/ebank/ledger/pkg/service/auth"
	"github.com/ebank/ledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CustomerTestSuite struct {
	suite.Suite
	cfg   *config.App
	app   *fiber.App
	user  map[string]string
	admin map[string]string
}

func (s *CustomerTestSuite) SetupTest() {
	s.cfg = testutils.Config()
	s.cfg.Auth.Enabled = true
	s.app, _ = testutils.NewTestApp(s.T(), s.cfg)
	s.user = map[string]string{"Authorization": "Bearer " + testutils.Token(s.T(), s.cfg, auth.ScopeUser)}
	s.admin = map[string]string{"Authorization": "Bearer " + testutils.Token(s.T(), s.cfg, auth.ScopeAdmin)}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestCustomerTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerTestSuite))
}

func (s *CustomerTestSuite) create(name, email string) dto.CustomerRead {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/customers",
		fiber.Map{"name": name, "email": email}, s.admin)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var c dto.CustomerRead
	testutils.Decode(s.T(), resp, &c)
	return c
}

func (s *CustomerTestSuite) TestScopes() {
	body := fiber.Map{"name": "yassir", "email": "yassir@gmail.com"}

	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers", nil, nil)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/customers", body, s.user)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers", nil, s.user)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers", nil, s.admin)
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *CustomerTestSuite) TestCRUD() {
	khadija := s.create("khadija", "khadija@gmail.com")
	s.create("yassir", "yassir@gmail.com")
	s.NotZero(khadija.ID)

	var found []dto.CustomerRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers/search?keyword=KHA", nil, s.user), &found)
	s.Require().Len(found, 1)
	s.Equal("khadija", found[0].Name)

	path := "/customers/" + itoa(khadija.ID)
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPut, path,
		fiber.Map{"name": "khadija b", "email": "kb@gmail.com"}, s.admin)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var got dto.CustomerRead
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, s.user), &got)
	s.Equal("khadija b", got.Name)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodDelete, path, nil, s.admin)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, nil, s.user)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *CustomerTestSuite) TestValidation() {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/customers",
		fiber.Map{"name": "", "email": "x@y.z"}, s.admin)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/customers",
		fiber.Map{"name": "oma", "email": "not-an-email"}, s.admin)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers/abc", nil, s.user)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *CustomerTestSuite) TestAccountsOfCustomer() {
	oma := s.create("oma", "oma@gmail.com")
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodPost, "/accounts/current", fiber.Map{
		"customerId": oma.ID, "initialBalance": "10", "overDraft": "9000",
	}, nil)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var accs []dto.AccountRead
	path := "/customers/" + itoa(oma.ID)
	testutils.Decode(s.T(), testutils.MakeRequest(s.T(), s.app, http.MethodGet, path+"/accounts", nil, s.user), &accs)
	s.Require().Len(accs, 1)
	s.True(accs[0].Balance.Equal(decimal.NewFromInt(10)))

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodDelete, path, nil, s.admin)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/customers/404/accounts", nil, s.user)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
