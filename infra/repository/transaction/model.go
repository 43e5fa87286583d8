package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents one append-only transaction log record. Rows are
// never updated after creation.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(10);not null"`
	Amount    int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
