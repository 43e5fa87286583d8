package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is the directory representation of an account.
type AccountRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionRead is one entry of an account's transaction log.
type TransactionRead struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page bundles one page of results with the total count, both taken from
// the same consistent read.
type Page[T any] struct {
	Total int64 `json:"total"`
	List  []T   `json:"list"`
}
