package user

import (
	"context"

	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// New creates a user repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.UserRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, u *domain.User) error {
	m := mapDomainToModel(u)
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *gormRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *gormRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "username = ?", username).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.PasswordHash != nil {
		updates["password"] = *update.PasswordHash
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates).Error)
}

func mapDomainToModel(u *domain.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.PasswordHash,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func mapModelToDomain(m *User) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		Email:        m.Email,
		Phone:        m.Phone,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
