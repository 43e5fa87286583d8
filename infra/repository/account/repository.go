package account

import (
	"context"

	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.AccountRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, a *domain.Account) error {
	m := mapDomainToModel(a)
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *gormRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&m), nil
}

// GetForUpdate locks the account row (SELECT ... FOR UPDATE) so concurrent
// balance mutations on the same account serialize at the store.
func (r *gormRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *gormRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&m), nil
}

func (r *gormRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	var models []Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*domain.Account, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result, nil
}

func (r *gormRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Account{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return count, nil
}

func (r *gormRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"balance": balance}).Error)
}

func (r *gormRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.AccountStatus,
) error {
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status)}).Error)
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).
		Delete(&Account{}, "id = ?", id).Error)
}

func mapDomainToModel(a *domain.Account) Account {
	return Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Password:  a.PasswordHash,
		Balance:   a.Balance,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func mapModelToDomain(m *Account) *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		PasswordHash: m.Password,
		Balance:      m.Balance,
		Status:       domain.AccountStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
