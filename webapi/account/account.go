package account

import (
	"context"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/middleware"
	acctsvc "github.com/amirasaad/minibank/pkg/service/account"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the account endpoints on the given router group. All of
// them require the token cookie.
func Routes(router fiber.Router, accountSvc *acctsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	router.Post("/accounts/", protected, Create(accountSvc))
	router.Get("/accounts/list", protected, List(accountSvc))
	router.Get("/accounts/:id/transactions", protected, ListTransactions(accountSvc))
	router.Get("/accounts/:id/balance", protected, GetBalance(accountSvc))
	router.Post("/accounts/:id/deposit", protected, Deposit(accountSvc))
	router.Post("/accounts/:id/withdraw", protected, Withdraw(accountSvc))
	router.Post("/accounts/:id/freeze", protected, Freeze(accountSvc))
	router.Post("/accounts/:id/unfreeze", protected, Unfreeze(accountSvc))
	router.Delete("/accounts/:id", protected, Delete(accountSvc))
}

// accountID parses the :id route parameter. The error response is written
// on failure.
func accountID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account id")
		return uuid.Nil, false
	}
	return id, true
}

// Create opens a new account for the authenticated user.
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateInput true "Account data"
// @Success 200 {object} common.Response
// @Router /accounts/ [post]
// @Security Bearer
func Create(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		created, err := accountSvc.Create(c.Context(), userID, input.Name, input.Password)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, created)
	}
}

// List returns a page of the user's accounts, most recently updated first.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} common.Response
// @Router /accounts/list [get]
// @Security Bearer
func List(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		page, err := accountSvc.List(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("pageSize", 20))
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, page)
	}
}

// ListTransactions returns a page of the account's transaction log.
// @Summary List account transactions
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/transactions [get]
// @Security Bearer
func ListTransactions(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		page, err := accountSvc.ListTransactions(c.Context(), userID, id, c.QueryInt("page", 1), c.QueryInt("pageSize", 20))
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, page)
	}
}

// GetBalance returns the account's current balance.
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/balance [get]
// @Security Bearer
func GetBalance(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		amount, err := accountSvc.GetBalance(c.Context(), userID, id)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, BalanceOutput{Amount: amount})
	}
}

// Deposit credits the account.
// @Summary Deposit
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body DepositInput true "Deposit amount"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/deposit [post]
// @Security Bearer
func Deposit(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[DepositInput](c)
		if input == nil {
			return err
		}
		if err := accountSvc.Deposit(c.Context(), userID, id, input.Amount); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}

// Withdraw debits the account after checking the account password.
// @Summary Withdraw
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body WithdrawInput true "Withdrawal data"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/withdraw [post]
// @Security Bearer
func Withdraw(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[WithdrawInput](c)
		if input == nil {
			return err
		}
		if err := accountSvc.Withdraw(c.Context(), userID, id, input.Amount, input.Password); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}

// Freeze suspends the account.
// @Summary Freeze account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body PasswordInput true "Account password"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/freeze [post]
// @Security Bearer
func Freeze(accountSvc *acctsvc.Service) fiber.Handler {
	return statusHandler(accountSvc.Freeze)
}

// Unfreeze reactivates the account.
// @Summary Unfreeze account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body PasswordInput true "Account password"
// @Success 200 {object} common.Response
// @Router /accounts/{id}/unfreeze [post]
// @Security Bearer
func Unfreeze(accountSvc *acctsvc.Service) fiber.Handler {
	return statusHandler(accountSvc.Unfreeze)
}

func statusHandler(op func(ctx context.Context, userID, accountID uuid.UUID, password string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[PasswordInput](c)
		if input == nil {
			return err
		}
		if err := op(c.Context(), userID, id, input.Password); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}

// Delete closes a zero-balance account and its transaction log.
// @Summary Delete account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body PasswordInput true "Account password"
// @Success 200 {object} common.Response
// @Router /accounts/{id} [delete]
// @Security Bearer
func Delete(accountSvc *acctsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		id, ok := accountID(c)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[PasswordInput](c)
		if input == nil {
			return err
		}
		if err := accountSvc.Delete(c.Context(), userID, id, input.Password); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}
