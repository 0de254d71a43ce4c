package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type CurriculumRepo interface {
	Create(ctx context.Context, tx *gorm.DB, curricula []*types.Curriculum) ([]*types.Curriculum, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Curriculum, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Curriculum, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	// TransitionStatus flips status from -> to in one conditional update and
	// reports whether a row actually changed, so concurrent approvals cannot
	// both succeed.
	TransitionStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.CurriculumStatus) (bool, error)
}

type curriculumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumRepo {
	return &curriculumRepo{db: db, log: baseLog.With("repo", "CurriculumRepo")}
}

func (r *curriculumRepo) Create(ctx context.Context, tx *gorm.DB, curricula []*types.Curriculum) ([]*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(curricula) == 0 {
		return []*types.Curriculum{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&curricula).Error; err != nil {
		return nil, err
	}
	return curricula, nil
}

func (r *curriculumRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Curriculum
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

func (r *curriculumRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Curriculum
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *curriculumRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Curriculum{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *curriculumRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.CurriculumStatus) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Curriculum{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
