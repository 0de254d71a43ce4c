package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/clients/sendgrid"
	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type ExpertInterestSignup struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Expertise string `json:"expertise"`
	Message   string `json:"message"`
}

type ExpertInterestService interface {
	Signup(ctx context.Context, signup ExpertInterestSignup) (*types.ExpertInterest, error)
}

type expertInterestService struct {
	db  *gorm.DB
	log *logger.Logger

	interestRepo repos.ExpertInterestRepo
	mailer       sendgrid.Client
}

// NewExpertInterestService accepts a nil mailer; signups still work, they
// just skip the confirmation email.
func NewExpertInterestService(db *gorm.DB, baseLog *logger.Logger, interestRepo repos.ExpertInterestRepo, mailer sendgrid.Client) ExpertInterestService {
	return &expertInterestService{
		db:           db,
		log:          baseLog.With("service", "ExpertInterestService"),
		interestRepo: interestRepo,
		mailer:       mailer,
	}
}

// NormalizeEmail is the canonical form for waitlist emails: trimmed and
// lowercased, so duplicates cannot hide behind case or whitespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.Contains(email, " ") {
		return false
	}
	return true
}

func (es *expertInterestService) Signup(ctx context.Context, signup ExpertInterestSignup) (*types.ExpertInterest, error) {
	email := NormalizeEmail(signup.Email)
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	exists, err := es.interestRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s: %w", email, ErrDuplicate)
	}

	now := time.Now()
	interest := &types.ExpertInterest{
		ID:        uuid.New(),
		Email:     email,
		Name:      strings.TrimSpace(signup.Name),
		Expertise: strings.TrimSpace(signup.Expertise),
		Message:   strings.TrimSpace(signup.Message),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := es.interestRepo.Create(ctx, nil, interest)
	if err != nil {
		// The unique constraint wins any race the existence check lost.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email %s: %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("create signup: %w", err)
	}

	if es.mailer != nil {
		mailErr := es.mailer.Send(ctx, sendgrid.SendEmailRequest{
			ToEmail:   created.Email,
			ToName:    created.Name,
			Subject:   "You're on the expert waitlist",
			PlainBody: "Thanks for your interest in teaching on our platform. We'll reach out as soon as expert onboarding opens.",
		})
		if mailErr != nil {
			es.log.Warn("Waitlist confirmation email failed", "email", created.Email, "error", mailErr)
		}
	}

	es.log.Info("Expert interest recorded", "email", created.Email)
	return created, nil
}
