package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/amirasaad/minibank/pkg/utils"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service is the ledger engine and account directory. Every
// balance-affecting operation runs as one atomic unit: the account row is
// read under a row lock, validated, and written together with its
// transaction log entry.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens a new account with balance 0 and status active. The name must
// be 3 to 20 characters and globally unique; the payment password must be
// exactly six digits.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, name, password string) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Create", "userID", userID, "name", name)

	if !utils.IsAccountName(name) {
		return nil, domain.ErrInvalidAccountName
	}
	if !utils.IsAccountPassword(password) {
		return nil, domain.ErrInvalidAccountPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Error("password hashing failed", "error", err)
		return nil, err
	}

	var created *domain.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := users.Get(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.GetByName(ctx, name); err == nil {
			return domain.ErrAccountNameTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		now := time.Now()
		created = &domain.Account{
			ID:           uuid.New(),
			UserID:       userID,
			Name:         name,
			PasswordHash: hash,
			Balance:      0,
			Status:       domain.AccountActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return accounts.Create(ctx, created)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = domain.ErrAccountNameTaken
		}
		log.Info("account creation failed", "error", err)
		return nil, err
	}
	log.Info("account created", "accountID", created.ID)
	return mapToRead(created), nil
}

// Deposit credits the account and appends a deposit record in the same
// atomic unit.
func (s *Service) Deposit(ctx context.Context, userID, accountID uuid.UUID, amount float64) error {
	log := s.logger.With("context", "Deposit", "userID", userID, "accountID", accountID)

	cents, err := domain.ToCents(amount)
	if err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, accounts, err := s.ownedForUpdate(ctx, uow, userID, accountID)
		if err != nil {
			return err
		}
		if err := acct.Deposit(cents); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, accountID, acct.Balance); err != nil {
			return err
		}
		return s.appendRecord(ctx, uow, accountID, domain.TransactionDeposit, cents)
	})
	if err != nil {
		log.Info("deposit failed", "error", err)
		return err
	}
	log.Info("deposit applied", "amount", amount)
	return nil
}

// Withdraw debits the account after verifying the payment password, and
// appends a withdraw record in the same atomic unit.
func (s *Service) Withdraw(ctx context.Context, userID, accountID uuid.UUID, amount float64, password string) error {
	log := s.logger.With("context", "Withdraw", "userID", userID, "accountID", accountID)

	cents, err := domain.ToCents(amount)
	if err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, accounts, err := s.ownedForUpdate(ctx, uow, userID, accountID)
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, acct.PasswordHash) {
			return domain.ErrAccountPasswordMismatch
		}
		if err := acct.Withdraw(cents); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, accountID, acct.Balance); err != nil {
			return err
		}
		return s.appendRecord(ctx, uow, accountID, domain.TransactionWithdraw, cents)
	})
	if err != nil {
		log.Info("withdrawal failed", "error", err)
		return err
	}
	log.Info("withdrawal applied", "amount", amount)
	return nil
}

// GetBalance returns the current balance. Ownership-checked, no password
// required.
func (s *Service) GetBalance(ctx context.Context, userID, accountID uuid.UUID) (float64, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return 0, err
	}
	acct, err := s.owned(ctx, accounts, userID, accountID)
	if err != nil {
		return 0, err
	}
	return domain.FromCents(acct.Balance), nil
}

// Freeze suspends the account. Freezing a frozen account is a no-op success.
func (s *Service) Freeze(ctx context.Context, userID, accountID uuid.UUID, password string) error {
	return s.setStatus(ctx, userID, accountID, password, domain.AccountFrozen)
}

// Unfreeze reactivates the account. Unfreezing an active account is a no-op
// success.
func (s *Service) Unfreeze(ctx context.Context, userID, accountID uuid.UUID, password string) error {
	return s.setStatus(ctx, userID, accountID, password, domain.AccountActive)
}

func (s *Service) setStatus(ctx context.Context, userID, accountID uuid.UUID, password string, status domain.AccountStatus) error {
	log := s.logger.With("context", "setStatus", "userID", userID, "accountID", accountID, "status", status)

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, accounts, err := s.ownedForUpdate(ctx, uow, userID, accountID)
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, acct.PasswordHash) {
			return domain.ErrAccountPasswordMismatch
		}
		var changed bool
		if status == domain.AccountFrozen {
			changed = acct.Freeze()
		} else {
			changed = acct.Unfreeze()
		}
		if !changed {
			return nil
		}
		return accounts.UpdateStatus(ctx, accountID, status)
	})
	if err != nil {
		log.Info("status change failed", "error", err)
		return err
	}
	log.Info("status set")
	return nil
}

// Delete closes an account whose balance is zero, removing its transaction
// log and the account row in one atomic unit.
func (s *Service) Delete(ctx context.Context, userID, accountID uuid.UUID, password string) error {
	log := s.logger.With("context", "Delete", "userID", userID, "accountID", accountID)

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, accounts, err := s.ownedForUpdate(ctx, uow, userID, accountID)
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, acct.PasswordHash) {
			return domain.ErrAccountPasswordMismatch
		}
		if err := acct.CanClose(); err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := transactions.DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		return accounts.Delete(ctx, accountID)
	})
	if err != nil {
		log.Info("account deletion failed", "error", err)
		return err
	}
	log.Info("account deleted")
	return nil
}

// List returns one page of the user's accounts ordered by most recent
// update, with the total count from the same consistent read.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*dto.Page[*dto.AccountRead], error) {
	page, pageSize = clampPage(page, pageSize)

	result := &dto.Page[*dto.AccountRead]{List: []*dto.AccountRead{}}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		total, err := accounts.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		items, err := accounts.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
		if err != nil {
			return err
		}
		result.Total = total
		for _, a := range items {
			result.List = append(result.List, mapToRead(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListTransactions returns one page of the account's transaction log,
// newest first, with the total count from the same consistent read.
func (s *Service) ListTransactions(ctx context.Context, userID, accountID uuid.UUID, page, pageSize int) (*dto.Page[*dto.TransactionRead], error) {
	page, pageSize = clampPage(page, pageSize)

	result := &dto.Page[*dto.TransactionRead]{List: []*dto.TransactionRead{}}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := s.owned(ctx, accounts, userID, accountID); err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		total, err := transactions.CountByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		items, err := transactions.ListByAccount(ctx, accountID, (page-1)*pageSize, pageSize)
		if err != nil {
			return err
		}
		result.Total = total
		for _, t := range items {
			result.List = append(result.List, &dto.TransactionRead{
				ID:        t.ID,
				Type:      string(t.Type),
				Amount:    domain.FromCents(t.Amount),
				CreatedAt: t.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// owned loads an account and enforces the ownership check.
func (s *Service) owned(ctx context.Context, accounts repository.AccountRepository, userID, accountID uuid.UUID) (*domain.Account, error) {
	acct, err := accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if !acct.OwnedBy(userID) {
		return nil, domain.ErrAccountForbidden
	}
	return acct, nil
}

// ownedForUpdate loads an account under a row lock and enforces the
// ownership check. Must run inside uow.Do.
func (s *Service) ownedForUpdate(ctx context.Context, uow repository.UnitOfWork, userID, accountID uuid.UUID) (*domain.Account, repository.AccountRepository, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	acct, err := accounts.GetForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrAccountNotFound
		}
		return nil, nil, err
	}
	if !acct.OwnedBy(userID) {
		return nil, nil, domain.ErrAccountForbidden
	}
	return acct, accounts, nil
}

func (s *Service) appendRecord(ctx context.Context, uow repository.UnitOfWork, accountID uuid.UUID, kind domain.TransactionType, cents int64) error {
	transactions, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	return transactions.Create(ctx, &domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      kind,
		Amount:    cents,
		CreatedAt: time.Now(),
	})
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize == 0:
		pageSize = defaultPageSize
	case pageSize < 1:
		pageSize = 1
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}

func mapToRead(a *domain.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        a.ID,
		Name:      a.Name,
		Status:    string(a.Status),
		UpdatedAt: a.UpdatedAt,
	}
}
