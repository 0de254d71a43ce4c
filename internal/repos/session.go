package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type LearningSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.LearningSession) ([]*types.LearningSession, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningSession, error)
	GetByCurriculumIDs(ctx context.Context, tx *gorm.DB, curriculumIDs []uuid.UUID) ([]*types.LearningSession, error)
	GetByCurriculumAndNumber(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID, sessionNumber int) (*types.LearningSession, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
}

type learningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) LearningSessionRepo {
	return &learningSessionRepo{db: db, log: baseLog.With("repo", "LearningSessionRepo")}
}

func (r *learningSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.LearningSession) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sessions) == 0 {
		return []*types.LearningSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *learningSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LearningSession
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

func (r *learningSessionRepo) GetByCurriculumIDs(ctx context.Context, tx *gorm.DB, curriculumIDs []uuid.UUID) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LearningSession
	if len(curriculumIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("curriculum_id IN ?", curriculumIDs).
		Order("session_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningSessionRepo) GetByCurriculumAndNumber(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID, sessionNumber int) (*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LearningSession
	if err := transaction.WithContext(ctx).
		Where("curriculum_id = ? AND session_number = ?", curriculumID, sessionNumber).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *learningSessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LearningSession{}).
		Where("id = ?", id).
		Updates(fields).Error
}
