package user

import (
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/middleware"
	authsvc "github.com/amirasaad/minibank/pkg/service/auth"
	usersvc "github.com/amirasaad/minibank/pkg/service/user"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the user endpoints on the given router group.
func Routes(router fiber.Router, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	router.Post("/users/register", Register(userSvc))
	router.Post("/users/login", Login(authSvc, cfg.Jwt))
	router.Post("/users/logout", Logout(cfg.Jwt))
	router.Get("/users/", middleware.JwtProtected(cfg.Jwt), GetProfile(userSvc))
	router.Put("/users/", middleware.JwtProtected(cfg.Jwt), UpdateProfile(userSvc))
}

// Register creates a new user.
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 200 {object} common.Response
// @Router /users/register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		if err := userSvc.Register(c.Context(), input.Username, input.Password, input.ConfirmPassword); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}

// Login authenticates a user and sets the HTTP-only token cookie.
// @Summary User login
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Router /users/login [post]
func Login(authSvc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		token, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   int(cfg.Expiry.Seconds()),
		})
		return common.SuccessResponseJSON(c, nil)
	}
}

// Logout clears the token cookie.
// @Summary User logout
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Router /users/logout [post]
func Logout(cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   -1,
		})
		return common.SuccessResponseJSON(c, nil)
	}
}

// GetProfile returns the authenticated user's profile.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Router /users/ [get]
// @Security Bearer
func GetProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		profile, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, profile)
	}
}

// UpdateProfile applies a partial update to the authenticated user.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateInput true "Profile update"
// @Success 200 {object} common.Response
// @Router /users/ [put]
// @Security Bearer
func UpdateProfile(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[UpdateInput](c)
		if input == nil {
			return err
		}
		err = userSvc.Update(c.Context(), userID, usersvc.UpdateInput{
			Username:        input.Username,
			Email:           input.Email,
			Phone:           input.Phone,
			Password:        input.Password,
			ConfirmPassword: input.ConfirmPassword,
		})
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, nil)
	}
}
