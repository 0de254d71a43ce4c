package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/clients/openai"
	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

const sessionSystemPrompt = "You are an expert educator writing one session of a personalized curriculum. Follow the requested output format exactly."

// ProgressFunc drives the UI progress bar during the two-call generation.
// It is cosmetic: there is no checkpointing and an interrupted generation
// starts over.
type ProgressFunc func(step, totalSteps int, message string)

type SessionGenerationService interface {
	Generate(ctx context.Context, curriculumID uuid.UUID, sessionNumber int, progress ProgressFunc) (*types.LearningSession, error)
}

type sessionGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	cfg         PromptConfig
	guard       *OwnershipGuard
	profileRepo repos.UserProfileRepo
	sessionRepo repos.LearningSessionRepo
	ai          openai.Client
}

func NewSessionGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg PromptConfig,
	guard *OwnershipGuard,
	profileRepo repos.UserProfileRepo,
	sessionRepo repos.LearningSessionRepo,
	ai openai.Client,
) SessionGenerationService {
	return &sessionGenerationService{
		db:          db,
		log:         baseLog.With("service", "SessionGenerationService"),
		cfg:         cfg,
		guard:       guard,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		ai:          ai,
	}
}

func (s *sessionGenerationService) Generate(ctx context.Context, curriculumID uuid.UUID, sessionNumber int, progress ProgressFunc) (*types.LearningSession, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	const totalSteps = 4

	curriculum, err := s.guard.CurriculumForCaller(ctx, nil, curriculumID)
	if err != nil {
		return nil, err
	}
	if curriculum.Status != types.CurriculumActive {
		return nil, fmt.Errorf("%w: curriculum is %s, sessions can only be generated while active",
			ErrIllegalTransition, curriculum.Status)
	}
	if sessionNumber < 1 {
		return nil, fmt.Errorf("%w: session number must be positive", ErrInvalidInput)
	}

	// Existence check first for a friendly 409; the unique index backs it up
	// if two submits race past this point.
	existing, err := s.sessionRepo.GetByCurriculumAndNumber(ctx, nil, curriculumID, sessionNumber)
	if err != nil {
		return nil, fmt.Errorf("check existing session: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("session %d: %w", sessionNumber, ErrDuplicate)
	}

	var plan types.GeneratedCurriculum
	if err := json.Unmarshal(curriculum.Plan, &plan); err != nil {
		return nil, fmt.Errorf("decode curriculum plan: %w", err)
	}
	stub, ok := findStub(plan, sessionNumber)
	if !ok {
		return nil, fmt.Errorf("session %d is not in the curriculum plan: %w", sessionNumber, ErrNotFound)
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{curriculum.UserID})
	if err != nil || len(profiles) == 0 {
		return nil, fmt.Errorf("load profile: %v", err)
	}
	profile := profiles[0]

	progress(1, totalSteps, "Preparing session outline")

	metaCtx, cancelMeta := context.WithTimeout(ctx, curriculumGenerationBudget)
	metaText, err := s.ai.GenerateText(metaCtx, sessionSystemPrompt,
		ComposeSessionMetadataPrompt(s.cfg, profile, stub),
		&openai.GenerateOptions{MaxTokens: 2048, Temperature: openai.Temp(0.7)})
	cancelMeta()
	if err != nil {
		s.log.Error("Session metadata call failed", "error", err, "curriculum_id", curriculumID, "session_number", sessionNumber)
		return nil, fmt.Errorf("%w: %s", ErrGeneration, openai.ClassifyError(err))
	}
	metaObj, err := ExtractJSONObject(metaText)
	if err != nil {
		return nil, err
	}
	content := NormalizeSessionContent(metaObj, stub)

	progress(2, totalSteps, "Session outline ready, writing lesson essay")

	// The essay call depends on the metadata output, so the two calls are
	// sequential. Either failure aborts the whole operation; the metadata
	// half is never saved on its own.
	essay, err := s.ai.GenerateText(ctx, sessionSystemPrompt,
		ComposeSessionEssayPrompt(profile, content),
		&openai.GenerateOptions{MaxTokens: 8192, Temperature: openai.Temp(0.7)})
	if err != nil {
		s.log.Error("Session essay call failed", "error", err, "curriculum_id", curriculumID, "session_number", sessionNumber)
		return nil, fmt.Errorf("%w: %s", ErrGeneration, openai.ClassifyError(err))
	}
	content.Essay = strings.TrimSpace(essay)
	if content.Essay == "" {
		return nil, fmt.Errorf("%w: essay came back empty", ErrGeneration)
	}

	progress(3, totalSteps, "Lesson essay ready, saving session")

	now := time.Now()
	session := &types.LearningSession{
		ID:            uuid.New(),
		CurriculumID:  curriculumID,
		SessionNumber: sessionNumber,
		Title:         content.Title,
		Description:   content.Overview,
		Content:       datatypes.JSON(mustJSON(content)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.sessionRepo.Create(ctx, nil, []*types.LearningSession{session}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("session %d: %w", sessionNumber, ErrDuplicate)
		}
		return nil, fmt.Errorf("persist session: %w", err)
	}

	progress(4, totalSteps, "Session saved")
	s.log.Info("Session generated",
		"curriculum_id", curriculumID,
		"session_id", session.ID,
		"session_number", sessionNumber,
	)
	return session, nil
}

func findStub(plan types.GeneratedCurriculum, sessionNumber int) (types.SessionStub, bool) {
	for _, stub := range plan.SessionList {
		if stub.SessionNumber == sessionNumber {
			return stub, true
		}
	}
	return types.SessionStub{}, false
}
