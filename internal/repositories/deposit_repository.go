package repositories

import (
	"context"

	"depositor/internal/models"

	"gorm.io/gorm"
)

// DepositRepository persists deposits. There is no update or delete path.
type DepositRepository interface {
	Create(ctx context.Context, deposit *models.Deposit) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Deposit, int64, error)
}

type depositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	return r.db.WithContext(ctx).Create(deposit).Error
}

func (r *depositRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Deposit, int64, error) {
	var (
		deposits []models.Deposit
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&models.Deposit{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&deposits).Error
	return deposits, total, err
}
