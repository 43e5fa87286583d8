package user

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

// Service handles registration and profile operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// UpdateInput is a partial profile update. Empty fields are ignored;
// Password and ConfirmPassword must be supplied together.
type UpdateInput struct {
	Username        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Register creates a new user with a salted password hash.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) error {
	log := s.logger.With("context", "Register", "username", username)

	if password != confirmPassword {
		return domain.ErrPasswordConfirmMismatch
	}
	if !utils.IsStrongPassword(password) {
		return domain.ErrWeakPassword
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Error("password hashing failed", "error", err)
		return err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		now := time.Now()
		return repo.Create(ctx, &domain.User{
			ID:           uuid.New(),
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Unique index fired under a concurrent register.
			err = domain.ErrUsernameTaken
		}
		log.Info("registration failed", "error", err)
		return err
	}
	log.Info("user registered")
	return nil
}

// Get returns the profile for the given user id.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapToRead(u), nil
}

// Update applies a partial profile update. A new password replaces the
// stored hash only when password and confirmation match.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) error {
	log := s.logger.With("context", "Update", "userID", userID)

	update := &dto.UserUpdate{}
	if input.Username != "" {
		update.Username = &input.Username
	}
	if input.Email != "" {
		if !utils.IsEmail(input.Email) {
			return domain.ErrValidation
		}
		update.Email = &input.Email
	}
	if input.Phone != "" {
		if !utils.IsPhone(input.Phone) {
			return domain.ErrInvalidPhone
		}
		update.Phone = &input.Phone
	}
	if input.Password != "" && input.ConfirmPassword != "" {
		if input.Password != input.ConfirmPassword {
			return domain.ErrPasswordConfirmMismatch
		}
		if !utils.IsStrongPassword(input.Password) {
			return domain.ErrWeakPassword
		}
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			log.Error("password hashing failed", "error", err)
			return err
		}
		update.PasswordHash = &hash
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return repo.Update(ctx, userID, update)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = domain.ErrUsernameTaken
		}
		log.Info("profile update failed", "error", err)
		return err
	}
	log.Info("profile updated")
	return nil
}

func mapToRead(u *domain.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
