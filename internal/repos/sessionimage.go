package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type SessionImageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, images []*types.SessionImage) ([]*types.SessionImage, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SessionImage, error)
	GetBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionImage, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	// GetOrphans returns image rows whose session no longer exists.
	GetOrphans(ctx context.Context, tx *gorm.DB) ([]*types.SessionImage, error)
}

type sessionImageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionImageRepo(db *gorm.DB, baseLog *logger.Logger) SessionImageRepo {
	return &sessionImageRepo{db: db, log: baseLog.With("repo", "SessionImageRepo")}
}

func (r *sessionImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.SessionImage) ([]*types.SessionImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(images) == 0 {
		return []*types.SessionImage{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *sessionImageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SessionImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SessionImage
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionImageRepo) GetBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SessionImage
	if len(sessionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionImageRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.SessionImage{}).Error
}

func (r *sessionImageRepo) GetOrphans(ctx context.Context, tx *gorm.DB) ([]*types.SessionImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SessionImage
	if err := transaction.WithContext(ctx).
		Where("session_id NOT IN (?)",
			transaction.Session(&gorm.Session{NewDB: true}).
				Model(&types.LearningSession{}).
				Select("id"),
		).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
