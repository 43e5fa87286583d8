package common

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response is the API envelope: code 0 on success with optional data,
// code 1 with a message on failure.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var validate = validator.New()

// SuccessResponseJSON writes a code-0 envelope.
func SuccessResponseJSON(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Code: 0, Data: data})
}

// ErrorResponseJSON writes a code-1 envelope with the given status.
func ErrorResponseJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Code: 1, Message: message})
}

// DomainErrorJSON maps a service error to its HTTP status. Uncategorized
// errors go to the log and surface as a generic 500; domain errors carry
// their own message.
func DomainErrorJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("unhandled error", "path", c.Path(), "error", err)
		return ErrorResponseJSON(c, status, "internal server error")
	}
	return ErrorResponseJSON(c, status, err.Error())
}

// ErrorToStatusCode maps domain error kinds to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it. On
// failure the error response is already written and nil is returned.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return &input, nil
}
