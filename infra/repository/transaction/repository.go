package transaction

import (
	"context"

	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := mapDomainToModel(t)
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *gormRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Transaction, error) {
	var models []Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*domain.Transaction, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result, nil
}

func (r *gormRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return count, nil
}

func (r *gormRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	return infrarepo.MapGormErrorToDomain(r.db.WithContext(ctx).
		Delete(&Transaction{}, "account_id = ?", accountID).Error)
}

func mapDomainToModel(t *domain.Transaction) Transaction {
	return Transaction{
		ID:        t.ID,
		AccountID: t.AccountID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}

func mapModelToDomain(m *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:        m.ID,
		AccountID: m.AccountID,
		Type:      domain.TransactionType(m.Type),
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}
