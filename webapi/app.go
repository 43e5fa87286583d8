package webapi

import (
	"github.com/amirasaad/minibank/pkg/config"
	acctsvc "github.com/amirasaad/minibank/pkg/service/account"
	authsvc "github.com/amirasaad/minibank/pkg/service/auth"
	usersvc "github.com/amirasaad/minibank/pkg/service/user"
	"github.com/amirasaad/minibank/webapi/account"
	"github.com/amirasaad/minibank/webapi/common"
	"github.com/amirasaad/minibank/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp assembles the fiber application: recovery, CORS for the web
// client, rate limiting, and the /api/v1 route groups.
func NewApp(
	cfg *config.App,
	userSvc *usersvc.Service,
	authSvc *authsvc.Service,
	accountSvc *acctsvc.Service,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			if status == fiber.StatusInternalServerError {
				return common.ErrorResponseJSON(c, status, "internal server error")
			}
			return common.ErrorResponseJSON(c, status, err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Cors.Origins,
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "rate limit exceeded")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	api := app.Group("/api/v1")
	user.Routes(api, userSvc, authSvc, cfg)
	account.Routes(api, accountSvc, cfg)

	return app
}
