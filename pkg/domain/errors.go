package domain

import (
	"errors"
	"fmt"
)

// Base error kinds. The HTTP boundary maps these to status codes; the
// wrapped errors below carry the operation-specific message.
var (
	// ErrValidation is returned when input or a business rule check fails.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when credentials or ownership checks fail.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("resource already exists")
)

var (
	ErrUserNotFound    = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account not found: %w", ErrNotFound)

	ErrUsernameTaken    = fmt.Errorf("username already taken: %w", ErrConflict)
	ErrAccountNameTaken = fmt.Errorf("account name already taken: %w", ErrConflict)

	// ErrUserUnauthorized covers failed logins and invalid or expired tokens.
	ErrUserUnauthorized = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	// ErrAccountForbidden is returned when the acting user does not own the
	// account being operated on.
	ErrAccountForbidden        = fmt.Errorf("account does not belong to user: %w", ErrUnauthorized)
	ErrAccountPasswordMismatch = fmt.Errorf("account password incorrect: %w", ErrUnauthorized)

	ErrAmountMustBePositive    = fmt.Errorf("amount must be positive: %w", ErrValidation)
	ErrPasswordConfirmMismatch = fmt.Errorf("passwords do not match: %w", ErrValidation)
	ErrWeakPassword            = fmt.Errorf(
		"password must contain upper and lower case letters, a digit and a special character: %w",
		ErrValidation)
	ErrInvalidAccountPassword = fmt.Errorf("account password must be exactly 6 digits: %w", ErrValidation)
	ErrInvalidAccountName     = fmt.Errorf("account name must be 3 to 20 characters: %w", ErrValidation)
	ErrInvalidPhone           = fmt.Errorf("invalid phone number: %w", ErrValidation)

	ErrAccountFrozen     = fmt.Errorf("account is frozen: %w", ErrValidation)
	ErrInsufficientFunds = fmt.Errorf("insufficient funds: %w", ErrValidation)
	ErrBalanceNotZero    = fmt.Errorf("account balance must be zero before deletion: %w", ErrValidation)
)
