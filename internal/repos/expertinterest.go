package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type ExpertInterestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interest *types.ExpertInterest) (*types.ExpertInterest, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type expertInterestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpertInterestRepo(db *gorm.DB, baseLog *logger.Logger) ExpertInterestRepo {
	return &expertInterestRepo{db: db, log: baseLog.With("repo", "ExpertInterestRepo")}
}

func (r *expertInterestRepo) Create(ctx context.Context, tx *gorm.DB, interest *types.ExpertInterest) (*types.ExpertInterest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(interest).Error; err != nil {
		return nil, err
	}
	return interest, nil
}

func (r *expertInterestRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ExpertInterest{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
