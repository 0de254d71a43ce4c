package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type ProfileUpdate struct {
	FirstName         *string `json:"first_name"`
	Background        *string `json:"background"`
	Interests         *string `json:"interests"`
	Experience        *string `json:"experience"`
	Goals             *string `json:"goals"`
	LearningSubject   *string `json:"learning_subject"`
	SkillLevel        *string `json:"skill_level"`
	TotalWeeks        *int    `json:"total_weeks"`
	SessionsPerWeek   *int    `json:"sessions_per_week"`
	SessionLengthMins *int    `json:"session_length_mins"`
}

type UserService interface {
	GetMe(ctx context.Context) (*types.UserProfile, error)
	UpdateMe(ctx context.Context, update ProfileUpdate) (*types.UserProfile, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.UserProfileRepo) UserService {
	return &userService{
		db:          db,
		log:         baseLog.With("service", "UserService"),
		profileRepo: profileRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.UserProfile, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := us.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(profiles) == 0 || profiles[0] == nil {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return profiles[0], nil
}

func (us *userService) UpdateMe(ctx context.Context, update ProfileUpdate) (*types.UserProfile, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	setInt := func(col string, v *int) {
		if v != nil {
			if *v < 0 {
				return
			}
			fields[col] = *v
		}
	}
	setString("first_name", update.FirstName)
	setString("background", update.Background)
	setString("interests", update.Interests)
	setString("experience", update.Experience)
	setString("goals", update.Goals)
	setString("learning_subject", update.LearningSubject)
	setString("skill_level", update.SkillLevel)
	setInt("total_weeks", update.TotalWeeks)
	setInt("sessions_per_week", update.SessionsPerWeek)
	setInt("session_length_mins", update.SessionLengthMins)

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	fields["updated_at"] = time.Now()

	if err := us.profileRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return us.GetMe(ctx)
}
