package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an account record in the database. Balance is stored
// in cents.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"uniqueIndex;not null;size:20"`
	Password  string    `gorm:"not null"`
	Balance   int64     `gorm:"not null;default:0"`
	Status    string    `gorm:"type:varchar(10);not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
