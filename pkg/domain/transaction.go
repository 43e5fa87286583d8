package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType labels a ledger entry.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// Transaction is an immutable, append-only log entry recording one balance
// mutation. Amount is in cents and always positive; the type carries the
// direction.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Type      TransactionType
	Amount    int64
	CreatedAt time.Time
}
