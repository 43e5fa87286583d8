package infra

import (
	"context"

	"github.com/amirasaad/minibank/infra/repository/account"
	"github.com/amirasaad/minibank/infra/repository/transaction"
	"github.com/amirasaad/minibank/infra/repository/user"
	"github.com/amirasaad/minibank/pkg/repository"
	"gorm.io/gorm"
)

// GormUoW implements repository.UnitOfWork on top of gorm transactions. All
// repositories handed out inside Do share the same transaction session, so a
// read-check-write sequence against one account commits or rolls back as a
// whole.
type GormUoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewGormUoW creates a UnitOfWork for the given *gorm.DB.
func NewGormUoW(db *gorm.DB) *GormUoW {
	return &GormUoW{db: db}
}

func (u *GormUoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a transaction boundary, providing a UnitOfWork bound to it.
// Nested calls reuse the surrounding transaction.
func (u *GormUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormUoW{db: u.db, tx: tx})
	})
}

func (u *GormUoW) UserRepository() (repository.UserRepository, error) {
	return user.New(u.session()), nil
}

func (u *GormUoW) AccountRepository() (repository.AccountRepository, error) {
	return account.New(u.session()), nil
}

func (u *GormUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transaction.New(u.session()), nil
}
