package webapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/minibank/internal/fake"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain"
	acctsvc "github.com/amirasaad/minibank/pkg/service/account"
	authsvc "github.com/amirasaad/minibank/pkg/service/auth"
	usersvc "github.com/amirasaad/minibank/pkg/service/user"
	"github.com/amirasaad/minibank/pkg/utils"
	"github.com/amirasaad/minibank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	userPassword    = "Sup3r$ecret"
	accountPassword = "123456"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type ApiTestSuite struct {
	suite.Suite
	app      *fiber.App
	store    *fake.Store
	uow      *fake.UoW
	cfg      *config.App
	userID   uuid.UUID
	token    string
	userHash string
	acctHash string
}

func TestApiTestSuite(t *testing.T) {
	suite.Run(t, new(ApiTestSuite))
}

func (s *ApiTestSuite) SetupSuite() {
	userHash, err := utils.HashPassword(userPassword)
	s.Require().NoError(err)
	s.userHash = userHash
	acctHash, err := utils.HashPassword(accountPassword)
	s.Require().NoError(err)
	s.acctHash = acctHash
}

func (s *ApiTestSuite) SetupTest() {
	s.cfg = &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000},
		DB:        &config.DB{},
		Jwt:       &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "token"},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Cors:      &config.Cors{Origins: "http://localhost:3001"},
	}

	s.store = fake.NewStore()
	s.uow = fake.NewUoW(s.store)
	logger := slog.Default()
	userSvc := usersvc.New(s.uow, logger)
	authSvc := authsvc.New(s.uow, s.cfg.Jwt, logger)
	accountSvc := acctsvc.New(s.uow, logger)
	s.app = webapi.NewApp(s.cfg, userSvc, authSvc, accountSvc)

	s.userID = s.seedUser("alice")
	token, err := authSvc.GenerateToken(&domain.User{ID: s.userID})
	s.Require().NoError(err)
	s.token = token
}

func (s *ApiTestSuite) seedUser(username string) uuid.UUID {
	users, err := s.uow.UserRepository()
	s.Require().NoError(err)
	id := uuid.New()
	s.Require().NoError(users.Create(context.Background(), &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: s.userHash,
	}))
	return id
}

func (s *ApiTestSuite) seedAccount(userID uuid.UUID, name string, balance int64, status domain.AccountStatus) uuid.UUID {
	accounts, err := s.uow.AccountRepository()
	s.Require().NoError(err)
	now := time.Now()
	id := uuid.New()
	s.Require().NoError(accounts.Create(context.Background(), &domain.Account{
		ID:           id,
		UserID:       userID,
		Name:         name,
		PasswordHash: s.acctHash,
		Balance:      balance,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	return id
}

// request performs an API call, optionally authenticated with the suite's
// token cookie, and decodes the response envelope.
func (s *ApiTestSuite) request(method, path string, body any, authed bool) (*http.Response, envelope) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: s.cfg.Jwt.CookieName, Value: s.token})
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	resp.Body.Close()

	var result envelope
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "" {
		_ = json.Unmarshal(raw, &result)
	}
	return resp, result
}

func (s *ApiTestSuite) decodeData(raw json.RawMessage, out any) {
	s.Require().NoError(json.Unmarshal(raw, out))
}

func (s *ApiTestSuite) TestHealth() {
	resp, _ := s.request("GET", "/", nil, false)
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *ApiTestSuite) TestRegister() {
	resp, body := s.request("POST", "/api/v1/users/register", fiber.Map{
		"username":        "bob",
		"password":        userPassword,
		"confirmPassword": userPassword,
	}, false)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(0, body.Code)
}

func (s *ApiTestSuite) TestRegisterValidation() {
	// Username below the 3 character minimum.
	resp, body := s.request("POST", "/api/v1/users/register", fiber.Map{
		"username":        "ab",
		"password":        userPassword,
		"confirmPassword": userPassword,
	}, false)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal(1, body.Code)
}

func (s *ApiTestSuite) TestRegisterDuplicate() {
	resp, body := s.request("POST", "/api/v1/users/register", fiber.Map{
		"username":        "alice",
		"password":        userPassword,
		"confirmPassword": userPassword,
	}, false)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal(1, body.Code)
	s.Contains(body.Message, "username already taken")
}

func (s *ApiTestSuite) TestLoginSetsCookie() {
	resp, body := s.request("POST", "/api/v1/users/login", fiber.Map{
		"username": "alice",
		"password": userPassword,
	}, false)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(0, body.Code)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == s.cfg.Jwt.CookieName {
			cookie = c
		}
	}
	s.Require().NotNil(cookie, "login must set the token cookie")
	s.NotEmpty(cookie.Value)
	s.True(cookie.HttpOnly)
}

func (s *ApiTestSuite) TestLoginWrongPassword() {
	resp, body := s.request("POST", "/api/v1/users/login", fiber.Map{
		"username": "alice",
		"password": "wrong-password",
	}, false)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal(1, body.Code)
}

func (s *ApiTestSuite) TestLogoutClearsCookie() {
	resp, body := s.request("POST", "/api/v1/users/logout", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(0, body.Code)

	for _, c := range resp.Cookies() {
		if c.Name == s.cfg.Jwt.CookieName {
			s.Empty(c.Value)
		}
	}
}

func (s *ApiTestSuite) TestProfileRequiresAuth() {
	resp, _ := s.request("GET", "/api/v1/users/", nil, false)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *ApiTestSuite) TestGetProfile() {
	resp, body := s.request("GET", "/api/v1/users/", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(0, body.Code)

	var profile struct {
		Username string `json:"username"`
	}
	s.decodeData(body.Data, &profile)
	s.Equal("alice", profile.Username)
}

func (s *ApiTestSuite) TestUpdateProfile() {
	resp, body := s.request("PUT", "/api/v1/users/", fiber.Map{
		"email": "alice@example.com",
		"phone": "13812345678",
	}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal(0, body.Code)

	resp, body = s.request("GET", "/api/v1/users/", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var profile struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	s.decodeData(body.Data, &profile)
	s.Equal("alice@example.com", profile.Email)
	s.Equal("13812345678", profile.Phone)
}

func (s *ApiTestSuite) TestUpdateProfileInvalidPhone() {
	resp, body := s.request("PUT", "/api/v1/users/", fiber.Map{"phone": "12345"}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal(1, body.Code)
}

func (s *ApiTestSuite) TestAccountLifecycle() {
	resp, body := s.request("POST", "/api/v1/accounts/", fiber.Map{
		"name":     "acc1",
		"password": accountPassword,
	}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var created struct {
		ID     uuid.UUID `json:"id"`
		Name   string    `json:"name"`
		Status string    `json:"status"`
	}
	s.decodeData(body.Data, &created)
	s.Equal("acc1", created.Name)
	s.Equal("active", created.Status)

	base := fmt.Sprintf("/api/v1/accounts/%s", created.ID)

	resp, _ = s.request("POST", base+"/deposit", fiber.Map{"amount": 100}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp, _ = s.request("POST", base+"/withdraw", fiber.Map{
		"amount":   30,
		"password": accountPassword,
	}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp, body = s.request("GET", base+"/balance", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var balance struct {
		Amount float64 `json:"amount"`
	}
	s.decodeData(body.Data, &balance)
	s.InDelta(70.0, balance.Amount, 1e-9)

	resp, body = s.request("POST", base+"/withdraw", fiber.Map{
		"amount":   1000,
		"password": accountPassword,
	}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(body.Message, "insufficient funds")

	resp, body = s.request("GET", base+"/transactions", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var log struct {
		Total int64 `json:"total"`
		List  []struct {
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"list"`
	}
	s.decodeData(body.Data, &log)
	s.Require().Equal(int64(2), log.Total)
	s.Equal("withdraw", log.List[0].Type)
	s.InDelta(30.0, log.List[0].Amount, 1e-9)
	s.Equal("deposit", log.List[1].Type)
}

func (s *ApiTestSuite) TestFreezeBlocksDeposits() {
	accountID := s.seedAccount(s.userID, "cold", 0, domain.AccountActive)
	base := fmt.Sprintf("/api/v1/accounts/%s", accountID)

	resp, _ := s.request("POST", base+"/freeze", fiber.Map{"password": accountPassword}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp, body := s.request("POST", base+"/deposit", fiber.Map{"amount": 10}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(body.Message, "frozen")

	resp, _ = s.request("POST", base+"/unfreeze", fiber.Map{"password": accountPassword}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp, _ = s.request("POST", base+"/deposit", fiber.Map{"amount": 10}, true)
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *ApiTestSuite) TestDeleteAccount() {
	accountID := s.seedAccount(s.userID, "empty", 0, domain.AccountActive)
	base := fmt.Sprintf("/api/v1/accounts/%s", accountID)

	resp, _ := s.request("DELETE", base, fiber.Map{"password": accountPassword}, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp, _ = s.request("GET", base+"/balance", nil, true)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *ApiTestSuite) TestDeleteAccountNonZeroBalance() {
	accountID := s.seedAccount(s.userID, "funded", 5000, domain.AccountActive)

	resp, body := s.request("DELETE", fmt.Sprintf("/api/v1/accounts/%s", accountID),
		fiber.Map{"password": accountPassword}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(body.Message, "balance must be zero")
}

func (s *ApiTestSuite) TestListAccounts() {
	s.seedAccount(s.userID, "first", 0, domain.AccountActive)
	s.seedAccount(s.userID, "second", 0, domain.AccountActive)

	resp, body := s.request("GET", "/api/v1/accounts/list", nil, true)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var page struct {
		Total int64 `json:"total"`
	}
	s.decodeData(body.Data, &page)
	s.Equal(int64(2), page.Total)
}

func (s *ApiTestSuite) TestForeignAccountRejected() {
	stranger := s.seedUser("mallory")
	accountID := s.seedAccount(stranger, "theirs", 5000, domain.AccountActive)

	resp, _ := s.request("GET", fmt.Sprintf("/api/v1/accounts/%s/balance", accountID), nil, true)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *ApiTestSuite) TestInvalidAccountID() {
	resp, body := s.request("GET", "/api/v1/accounts/not-a-uuid/balance", nil, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("invalid account id", body.Message)
}

func (s *ApiTestSuite) TestCreateAccountValidation() {
	resp, _ := s.request("POST", "/api/v1/accounts/", fiber.Map{
		"name":     "acc1",
		"password": "abcdef",
	}, true)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}
