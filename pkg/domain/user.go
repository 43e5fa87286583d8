package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account holder. Email and phone are optional profile
// fields; Username is unique.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
