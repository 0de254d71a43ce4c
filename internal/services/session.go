package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type SessionService interface {
	GetForCaller(ctx context.Context, id uuid.UUID) (*types.LearningSession, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*types.LearningSession, error)
	// DownloadMarkdown renders the stored session content as a standalone
	// markdown document and returns it with a download filename.
	DownloadMarkdown(ctx context.Context, id uuid.UUID) (filename string, markdown string, err error)
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	guard       *OwnershipGuard
	sessionRepo repos.LearningSessionRepo
}

func NewSessionService(db *gorm.DB, baseLog *logger.Logger, guard *OwnershipGuard, sessionRepo repos.LearningSessionRepo) SessionService {
	return &sessionService{
		db:          db,
		log:         baseLog.With("service", "SessionService"),
		guard:       guard,
		sessionRepo: sessionRepo,
	}
}

func (ss *sessionService) GetForCaller(ctx context.Context, id uuid.UUID) (*types.LearningSession, error) {
	session, _, err := ss.guard.SessionForCaller(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (ss *sessionService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*types.LearningSession, error) {
	session, _, err := ss.guard.SessionForCaller(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"completed": completed}
	if completed {
		now := time.Now().UTC()
		fields["completed_at"] = &now
		session.CompletedAt = &now
	} else {
		fields["completed_at"] = nil
		session.CompletedAt = nil
	}
	if err := ss.sessionRepo.UpdateFields(ctx, nil, session.ID, fields); err != nil {
		return nil, fmt.Errorf("update session %s: %w", session.ID, err)
	}
	session.Completed = completed
	return session, nil
}

func (ss *sessionService) DownloadMarkdown(ctx context.Context, id uuid.UUID) (string, string, error) {
	session, _, err := ss.guard.SessionForCaller(ctx, nil, id)
	if err != nil {
		return "", "", err
	}
	var content types.SessionContent
	if len(session.Content) > 0 {
		if err := json.Unmarshal(session.Content, &content); err != nil {
			return "", "", fmt.Errorf("decode session content %s: %w", session.ID, err)
		}
	}
	if content.Title == "" {
		content.Title = session.Title
	}
	if content.SessionNumber == 0 {
		content.SessionNumber = session.SessionNumber
	}
	if content.Overview == "" {
		content.Overview = session.Description
	}
	return MarkdownFilename(content), RenderSessionMarkdown(content), nil
}
