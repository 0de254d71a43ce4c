package services

import (
	"context"
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

const (
	promptGenerationBudget     = 30 * time.Second
	curriculumGenerationBudget = 60 * time.Second
)

const curriculumSystemPrompt = "You are an expert curriculum designer. You build rigorous, personalized learning plans and always answer in the exact JSON shape you are asked for."

type CurriculumGenerationService interface {
	// ComposePrompt calls the model once to draft a reusable generation
	// prompt tailored to the profile.
	ComposePrompt(ctx context.Context, profile *types.UserProfile) (string, error)
	// Generate drafts a full syllabus, normalizes it and persists the
	// curriculum row in pending_approval.
	Generate(ctx context.Context, profile *types.UserProfile, customPrompt string) (*types.Curriculum, *types.GeneratedCurriculum, error)
}

type curriculumGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	cfg            PromptConfig
	curriculumRepo repos.CurriculumRepo
	ai             openai.Client
}

func NewCurriculumGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg PromptConfig,
	curriculumRepo repos.CurriculumRepo,
	ai openai.Client,
) CurriculumGenerationService {
	return &curriculumGenerationService{
		db:             db,
		log:            baseLog.With("service", "CurriculumGenerationService"),
		cfg:            cfg,
		curriculumRepo: curriculumRepo,
		ai:             ai,
	}
}

func (s *curriculumGenerationService) ComposePrompt(ctx context.Context, profile *types.UserProfile) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("%w: profile required", ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, promptGenerationBudget)
	defer cancel()

	text, err := s.ai.GenerateText(ctx, curriculumSystemPrompt, ComposeGenerationPrompt(s.cfg, profile), &openai.GenerateOptions{MaxTokens: 1024})
	if err != nil {
		s.log.Error("Prompt generation failed", "error", err)
		return "", fmt.Errorf("%w: %s", ErrGeneration, openai.ClassifyError(err))
	}
	return text, nil
}

func (s *curriculumGenerationService) Generate(ctx context.Context, profile *types.UserProfile, customPrompt string) (*types.Curriculum, *types.GeneratedCurriculum, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("%w: profile required", ErrInvalidInput)
	}

	prompt := strings.TrimSpace(customPrompt)
	if prompt == "" {
		prompt = ComposeSyllabusPrompt(s.cfg, profile)
	}

	genCtx, cancel := context.WithTimeout(ctx, curriculumGenerationBudget)
	text, err := s.ai.GenerateText(genCtx, curriculumSystemPrompt, prompt, &openai.GenerateOptions{MaxTokens: 4096, Temperature: openai.Temp(0.7)})
	cancel()
	if err != nil {
		s.log.Error("Curriculum generation call failed", "error", err, "user_id", userID)
		return nil, nil, fmt.Errorf("%w: %s", ErrGeneration, openai.ClassifyError(err))
	}

	obj, err := ExtractJSONObject(text)
	if err != nil {
		return nil, nil, err
	}
	generated, err := NormalizeCurriculum(obj)
	if err != nil {
		return nil, nil, err
	}
	if ok, defects := ValidateCurriculum(generated); !ok {
		s.log.Warn("Generated curriculum failed validation", "defects", defects, "user_id", userID)
		return nil, nil, fmt.Errorf("%w: generated curriculum was incomplete: %s", ErrGeneration, strings.Join(defects, "; "))
	}

	overview := generated.CurriculumOverview
	if overview.CurriculumType == "" {
		overview.CurriculumType = CurriculumType(s.cfg, len(generated.SessionList))
	}
	if overview.ContentDensity == "" {
		overview.ContentDensity = ContentDensity(s.cfg, profile.SessionLengthMins)
	}
	if overview.TotalHours == 0 {
		var mins int
		for _, stub := range generated.SessionList {
			mins += stub.EstimatedMinutes
		}
		overview.TotalHours = float64(mins) / 60.0
	}
	generated.CurriculumOverview = overview

	now := time.Now()
	curriculum := &types.Curriculum{
		ID:         uuid.New(),
		UserID:     userID,
		Subject:    profile.LearningSubject,
		SkillLevel: profile.SkillLevel,
		Goals:      profile.Goals,
		Background: datatypes.JSON(mustJSON(map[string]any{
			"background": profile.Background,
			"interests":  profile.Interests,
			"experience": profile.Experience,
		})),
		Availability: datatypes.JSON(mustJSON(map[string]any{
			"total_weeks":         profile.TotalWeeks,
			"sessions_per_week":   profile.SessionsPerWeek,
			"session_length_mins": profile.SessionLengthMins,
		})),
		Plan:         datatypes.JSON(mustJSON(generated)),
		Status:       types.CurriculumPendingApproval,
		Title:        overview.Title,
		TotalHours:   overview.TotalHours,
		SessionCount: len(generated.SessionList),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.curriculumRepo.Create(ctx, nil, []*types.Curriculum{curriculum}); err != nil {
		return nil, nil, fmt.Errorf("persist curriculum: %w", err)
	}

	s.log.Info("Curriculum generated",
		"curriculum_id", curriculum.ID,
		"user_id", userID,
		"sessions", curriculum.SessionCount,
	)
	return curriculum, generated, nil
}
