package infra

import (
	"github.com/amirasaad/minibank/infra/repository/account"
	"github.com/amirasaad/minibank/infra/repository/transaction"
	"github.com/amirasaad/minibank/infra/repository/user"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&account.Account{},
		&transaction.Transaction{},
	)
}
