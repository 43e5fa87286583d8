package middleware

import (
	"github.com/amirasaad/minibank/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected guards a route with the signed-token cookie set at login.
// The verified *jwt.Token lands in c.Locals("user") for handlers to read
// the acting user from.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.Secret)},
		TokenLookup: "cookie:" + cfg.CookieName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return jwtError(c)
		},
	})
}

func jwtError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    1,
		"message": "invalid or missing token",
	})
}
