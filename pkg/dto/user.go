package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserRead is the profile representation returned to clients; it never
// carries the password hash.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserUpdate is a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	Phone        *string
	PasswordHash *string
}
