package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sageleaf/curricula-backend/internal/types"
)

func guardFixture() (*OwnershipGuard, *types.Curriculum, *types.LearningSession, uuid.UUID) {
	ownerID := uuid.New()
	curriculum := &types.Curriculum{ID: uuid.New(), UserID: ownerID, Status: types.CurriculumActive}
	session := &types.LearningSession{ID: uuid.New(), CurriculumID: curriculum.ID, SessionNumber: 1}

	curriculumRepo := &fakeCurriculumRepo{rows: map[uuid.UUID]*types.Curriculum{curriculum.ID: curriculum}}
	sessionRepo := &fakeSessionRepo{rows: map[uuid.UUID]*types.LearningSession{session.ID: session}}
	return NewOwnershipGuard(curriculumRepo, sessionRepo), curriculum, session, ownerID
}

func TestCurriculumForCaller(t *testing.T) {
	guard, curriculum, _, ownerID := guardFixture()

	got, err := guard.CurriculumForCaller(callerContext(ownerID), nil, curriculum.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if got.ID != curriculum.ID {
		t.Errorf("got curriculum %s, want %s", got.ID, curriculum.ID)
	}

	// A row owned by someone else must be indistinguishable from a missing
	// one.
	if _, err := guard.CurriculumForCaller(callerContext(uuid.New()), nil, curriculum.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign caller: err = %v, want ErrNotFound", err)
	}
	if _, err := guard.CurriculumForCaller(callerContext(ownerID), nil, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing row: err = %v, want ErrNotFound", err)
	}
	if _, err := guard.CurriculumForCaller(context.Background(), nil, curriculum.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("no caller: err = %v, want ErrUnauthenticated", err)
	}
}

func TestSessionForCaller(t *testing.T) {
	guard, curriculum, session, ownerID := guardFixture()

	gotSession, gotCurriculum, err := guard.SessionForCaller(callerContext(ownerID), nil, session.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if gotSession.ID != session.ID || gotCurriculum.ID != curriculum.ID {
		t.Errorf("got (%s, %s), want (%s, %s)", gotSession.ID, gotCurriculum.ID, session.ID, curriculum.ID)
	}

	if _, _, err := guard.SessionForCaller(callerContext(uuid.New()), nil, session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign caller: err = %v, want ErrNotFound", err)
	}
	if _, _, err := guard.SessionForCaller(callerContext(ownerID), nil, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing row: err = %v, want ErrNotFound", err)
	}
}
