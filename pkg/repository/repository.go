package repository

import (
	"context"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/google/uuid"
)

// UserRepository persists users. Implementations translate store errors to
// the domain taxonomy (ErrNotFound, ErrConflict).
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error
}

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// GetForUpdate reads the account row locked against concurrent writers.
	// Must be called inside a UnitOfWork.Do transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByName(ctx context.Context, name string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Account, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository persists the append-only transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]*domain.Transaction, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}
