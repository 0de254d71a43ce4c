package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/clients/openai"
	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/requestdata"
	"github.com/sageleaf/curricula-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func callerContext(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		Subject: "sub-" + userID.String(),
		UserID:  userID,
	})
}

type fakeCurriculumRepo struct {
	rows map[uuid.UUID]*types.Curriculum
}

func (f *fakeCurriculumRepo) Create(ctx context.Context, tx *gorm.DB, curricula []*types.Curriculum) ([]*types.Curriculum, error) {
	for _, row := range curricula {
		f.rows[row.ID] = row
	}
	return curricula, nil
}

func (f *fakeCurriculumRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Curriculum, error) {
	var out []*types.Curriculum
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCurriculumRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Curriculum, error) {
	var out []*types.Curriculum
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCurriculumRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeCurriculumRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to types.CurriculumStatus) (bool, error) {
	row, ok := f.rows[id]
	if !ok || row.Status != from {
		return false, nil
	}
	row.Status = to
	return true, nil
}

type fakeSessionRepo struct {
	rows      map[uuid.UUID]*types.LearningSession
	createErr error
	created   []*types.LearningSession
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.LearningSession) ([]*types.LearningSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, row := range sessions {
		f.rows[row.ID] = row
	}
	f.created = append(f.created, sessions...)
	return sessions, nil
}

func (f *fakeSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningSession, error) {
	var out []*types.LearningSession
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetByCurriculumIDs(ctx context.Context, tx *gorm.DB, curriculumIDs []uuid.UUID) ([]*types.LearningSession, error) {
	var out []*types.LearningSession
	for _, row := range f.rows {
		for _, id := range curriculumIDs {
			if row.CurriculumID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetByCurriculumAndNumber(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID, sessionNumber int) (*types.LearningSession, error) {
	for _, row := range f.rows {
		if row.CurriculumID == curriculumID && row.SessionNumber == sessionNumber {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

type fakeProfileRepo struct {
	rows map[uuid.UUID]*types.UserProfile
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.UserProfile) ([]*types.UserProfile, error) {
	for _, row := range profiles {
		f.rows[row.ID] = row
	}
	return profiles, nil
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserProfile, error) {
	var out []*types.UserProfile
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subject string) (*types.UserProfile, error) {
	for _, row := range f.rows {
		if row.Subject == subject {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

// fakeAI replays one canned response (or error) per GenerateText call, in
// order.
type fakeAI struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeAI) GenerateText(ctx context.Context, system string, user string, opts *openai.GenerateOptions) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("fakeAI: no response scripted for call")
}

func (f *fakeAI) GenerateImage(ctx context.Context, prompt string) (openai.ImageGeneration, error) {
	return openai.ImageGeneration{}, errors.New("fakeAI: image generation not scripted")
}
