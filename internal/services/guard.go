package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/requestdata"
	"github.com/sageleaf/curricula-backend/internal/types"
)

// OwnershipGuard is the single place that answers "does this row belong to
// the caller". A row owned by someone else is reported as ErrNotFound so the
// API never confirms another user's data exists.
type OwnershipGuard struct {
	curriculumRepo repos.CurriculumRepo
	sessionRepo    repos.LearningSessionRepo
}

func NewOwnershipGuard(curriculumRepo repos.CurriculumRepo, sessionRepo repos.LearningSessionRepo) *OwnershipGuard {
	return &OwnershipGuard{curriculumRepo: curriculumRepo, sessionRepo: sessionRepo}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return rd.UserID, nil
}

func (g *OwnershipGuard) CurriculumForCaller(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Curriculum, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := g.curriculumRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil || rows[0].UserID != userID {
		return nil, fmt.Errorf("curriculum %s: %w", id, ErrNotFound)
	}
	return rows[0], nil
}

func (g *OwnershipGuard) SessionForCaller(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningSession, *types.Curriculum, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := g.sessionRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	if len(sessions) == 0 || sessions[0] == nil {
		return nil, nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	session := sessions[0]

	curricula, err := g.curriculumRepo.GetByIDs(ctx, tx, []uuid.UUID{session.CurriculumID})
	if err != nil {
		return nil, nil, fmt.Errorf("load parent curriculum: %w", err)
	}
	if len(curricula) == 0 || curricula[0] == nil || curricula[0].UserID != userID {
		return nil, nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return session, curricula[0], nil
}
