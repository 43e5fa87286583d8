package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = "8f2b9f0e-0000-0000-0000-000000000000"
	claims["exp"] = time.Now().Add(expiry).Unix()
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(cfg *config.Jwt) *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JwtProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJwtProtected(t *testing.T) {
	require := require.New(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "token"}
	app := protectedApp(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, cfg.Secret, time.Hour)})
	resp, err := app.Test(req, -1)
	require.NoError(err)
	require.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestJwtProtected_MissingToken(t *testing.T) {
	require := require.New(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "token"}
	app := protectedApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(err)
	require.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_WrongSecret(t *testing.T) {
	require := require.New(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "token"}
	app := protectedApp(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, "other-secret", time.Hour)})
	resp, err := app.Test(req, -1)
	require.NoError(err)
	require.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_ExpiredToken(t *testing.T) {
	require := require.New(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "token"}
	app := protectedApp(cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, cfg.Secret, -time.Hour)})
	resp, err := app.Test(req, -1)
	require.NoError(err)
	require.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_CustomCookieName(t *testing.T) {
	require := require.New(t)
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour, CookieName: "session"}
	app := protectedApp(cfg)

	// Token under the default name is not picked up.
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, cfg.Secret, time.Hour)})
	resp, err := app.Test(req, -1)
	require.NoError(err)
	require.Equal(fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signToken(t, cfg.Secret, time.Hour)})
	resp, err = app.Test(req, -1)
	require.NoError(err)
	require.Equal(fiber.StatusOK, resp.StatusCode)
}
