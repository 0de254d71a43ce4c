package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

// legalTransitions is the whole curriculum lifecycle. Anything not listed
// here is rejected, which is what keeps states like "approved but still
// pending" unreachable.
var legalTransitions = map[types.CurriculumStatus][]types.CurriculumStatus{
	types.CurriculumPendingApproval: {types.CurriculumActive, types.CurriculumRejected},
	types.CurriculumActive:          {types.CurriculumCompleted},
}

func transitionAllowed(from, to types.CurriculumStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CurriculumService interface {
	GetForCaller(ctx context.Context, id uuid.UUID) (*types.Curriculum, []*types.LearningSession, error)
	ListForCaller(ctx context.Context) ([]*types.Curriculum, error)
	Approve(ctx context.Context, id uuid.UUID, customizations map[string]any) (*types.Curriculum, error)
	Reject(ctx context.Context, id uuid.UUID) (*types.Curriculum, error)
	Complete(ctx context.Context, id uuid.UUID) (*types.Curriculum, error)
}

type curriculumService struct {
	db  *gorm.DB
	log *logger.Logger

	guard          *OwnershipGuard
	curriculumRepo repos.CurriculumRepo
	sessionRepo    repos.LearningSessionRepo
}

func NewCurriculumService(
	db *gorm.DB,
	baseLog *logger.Logger,
	guard *OwnershipGuard,
	curriculumRepo repos.CurriculumRepo,
	sessionRepo repos.LearningSessionRepo,
) CurriculumService {
	return &curriculumService{
		db:             db,
		log:            baseLog.With("service", "CurriculumService"),
		guard:          guard,
		curriculumRepo: curriculumRepo,
		sessionRepo:    sessionRepo,
	}
}

func (cs *curriculumService) GetForCaller(ctx context.Context, id uuid.UUID) (*types.Curriculum, []*types.LearningSession, error) {
	curriculum, err := cs.guard.CurriculumForCaller(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := cs.sessionRepo.GetByCurriculumIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, nil, fmt.Errorf("load sessions: %w", err)
	}
	return curriculum, sessions, nil
}

func (cs *curriculumService) ListForCaller(ctx context.Context) ([]*types.Curriculum, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return cs.curriculumRepo.GetByUserID(ctx, nil, userID)
}

func (cs *curriculumService) Approve(ctx context.Context, id uuid.UUID, customizations map[string]any) (*types.Curriculum, error) {
	var out *types.Curriculum
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		curriculum, err := cs.guard.CurriculumForCaller(ctx, tx, id)
		if err != nil {
			return err
		}

		if len(customizations) > 0 {
			var plan map[string]any
			if err := json.Unmarshal(curriculum.Plan, &plan); err != nil {
				plan = map[string]any{}
			}
			plan["customizations"] = customizations
			if err := cs.curriculumRepo.UpdateFields(ctx, tx, id, map[string]any{
				"plan": datatypes.JSON(mustJSON(plan)),
			}); err != nil {
				return fmt.Errorf("store customizations: %w", err)
			}
		}

		changed, err := cs.transition(ctx, tx, curriculum, types.CurriculumActive)
		if err != nil {
			return err
		}
		out = changed
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Curriculum approved", "curriculum_id", id)
	return out, nil
}

func (cs *curriculumService) Reject(ctx context.Context, id uuid.UUID) (*types.Curriculum, error) {
	curriculum, err := cs.guard.CurriculumForCaller(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out, err := cs.transition(ctx, nil, curriculum, types.CurriculumRejected)
	if err != nil {
		return nil, err
	}
	cs.log.Info("Curriculum rejected", "curriculum_id", id)
	return out, nil
}

func (cs *curriculumService) Complete(ctx context.Context, id uuid.UUID) (*types.Curriculum, error) {
	curriculum, err := cs.guard.CurriculumForCaller(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out, err := cs.transition(ctx, nil, curriculum, types.CurriculumCompleted)
	if err != nil {
		return nil, err
	}
	cs.log.Info("Curriculum completed", "curriculum_id", id)
	return out, nil
}

func (cs *curriculumService) transition(ctx context.Context, tx *gorm.DB, curriculum *types.Curriculum, to types.CurriculumStatus) (*types.Curriculum, error) {
	from := curriculum.Status
	if !transitionAllowed(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	changed, err := cs.curriculumRepo.TransitionStatus(ctx, tx, curriculum.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("transition %s -> %s: %w", from, to, err)
	}
	if !changed {
		// Someone else moved the row first; re-read so the error is honest.
		return nil, fmt.Errorf("%w: curriculum is no longer %s", ErrIllegalTransition, from)
	}
	curriculum.Status = to
	return curriculum, nil
}
