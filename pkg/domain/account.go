package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
)

// Account is a ledger account owned by exactly one user. Balance is stored
// in cents and never goes negative; every mutation goes through the methods
// below so the invariants hold in one place.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	PasswordHash string
	Balance      int64
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnedBy reports whether userID is the account's registered owner.
func (a *Account) OwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}

// Deposit credits amount cents. The account must be active.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}
	if a.Status == AccountFrozen {
		return ErrAccountFrozen
	}
	a.Balance += amount
	return nil
}

// Withdraw debits amount cents. The account must be active and funded.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}
	if a.Status == AccountFrozen {
		return ErrAccountFrozen
	}
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

// Freeze moves the account to frozen. Freezing a frozen account is a no-op;
// the returned bool reports whether the status actually changed.
func (a *Account) Freeze() bool {
	if a.Status == AccountFrozen {
		return false
	}
	a.Status = AccountFrozen
	return true
}

// Unfreeze moves the account back to active, no-op when already active.
func (a *Account) Unfreeze() bool {
	if a.Status == AccountActive {
		return false
	}
	a.Status = AccountActive
	return true
}

// CanClose reports whether the account may be deleted.
func (a *Account) CanClose() error {
	if a.Balance != 0 {
		return ErrBalanceNotZero
	}
	return nil
}
