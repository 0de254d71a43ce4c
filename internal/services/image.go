package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/clients/gcs"
	"github.com/sageleaf/curricula-backend/internal/clients/openai"
	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/types"
)

type ImageService interface {
	// GenerateForSession asks the image model for an illustration, re-uploads
	// the bytes to durable storage and persists the metadata row.
	GenerateForSession(ctx context.Context, sessionID uuid.UUID, prompt string) (*types.SessionImage, error)
	GetForCaller(ctx context.Context, imageID uuid.UUID) (*types.SessionImage, error)
	DeleteForCaller(ctx context.Context, imageID uuid.UUID) error
	// CleanupOrphans removes image rows (and stored objects) whose session
	// has been deleted.
	CleanupOrphans(ctx context.Context) (int, error)
}

type imageService struct {
	db  *gorm.DB
	log *logger.Logger

	guard     *OwnershipGuard
	imageRepo repos.SessionImageRepo
	bucket    gcs.BucketService
	ai        openai.Client
}

func NewImageService(
	db *gorm.DB,
	baseLog *logger.Logger,
	guard *OwnershipGuard,
	imageRepo repos.SessionImageRepo,
	bucket gcs.BucketService,
	ai openai.Client,
) ImageService {
	return &imageService{
		db:        db,
		log:       baseLog.With("service", "ImageService"),
		guard:     guard,
		imageRepo: imageRepo,
		bucket:    bucket,
		ai:        ai,
	}
}

func (is *imageService) GenerateForSession(ctx context.Context, sessionID uuid.UUID, prompt string) (*types.SessionImage, error) {
	if is.bucket == nil {
		return nil, fmt.Errorf("%w: image storage not configured", ErrInvalidInput)
	}
	session, _, err := is.guard.SessionForCaller(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = fmt.Sprintf(
			"A clean, modern educational illustration for a lesson titled %q. %s No text in the image.",
			session.Title, session.Description)
	}

	gen, err := is.ai.GenerateImage(ctx, prompt)
	if err != nil {
		is.log.Error("Image generation failed", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("%w: %s", ErrGeneration, openai.ClassifyError(err))
	}

	key := fmt.Sprintf("session-images/%s/%s.png", sessionID, uuid.New())
	if err := is.bucket.UploadFile(ctx, key, gen.MimeType, bytes.NewReader(gen.Bytes)); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	now := time.Now()
	image := &types.SessionImage{
		ID:            uuid.New(),
		SessionID:     sessionID,
		StorageKey:    key,
		MimeType:      gen.MimeType,
		PublicURL:     is.bucket.GetPublicURL(key),
		Prompt:        prompt,
		RevisedPrompt: gen.RevisedPrompt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := is.imageRepo.Create(ctx, nil, []*types.SessionImage{image}); err != nil {
		// Best effort: don't leave the uploaded object behind.
		if delErr := is.bucket.DeleteFile(ctx, key); delErr != nil {
			is.log.Warn("Failed to remove object after insert failure", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("persist image: %w", err)
	}
	return image, nil
}

func (is *imageService) GetForCaller(ctx context.Context, imageID uuid.UUID) (*types.SessionImage, error) {
	images, err := is.imageRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	if len(images) == 0 || images[0] == nil {
		return nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
	}
	image := images[0]
	if _, _, err := is.guard.SessionForCaller(ctx, nil, image.SessionID); err != nil {
		return nil, err
	}
	return image, nil
}

func (is *imageService) DeleteForCaller(ctx context.Context, imageID uuid.UUID) error {
	image, err := is.GetForCaller(ctx, imageID)
	if err != nil {
		return err
	}
	if is.bucket != nil {
		if err := is.bucket.DeleteFile(ctx, image.StorageKey); err != nil {
			is.log.Warn("Failed to delete stored object, removing row anyway", "key", image.StorageKey, "error", err)
		}
	}
	return is.imageRepo.DeleteByIDs(ctx, nil, []uuid.UUID{image.ID})
}

func (is *imageService) CleanupOrphans(ctx context.Context) (int, error) {
	orphans, err := is.imageRepo.GetOrphans(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("find orphans: %w", err)
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	if is.bucket != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, orphan := range orphans {
			orphan := orphan
			g.Go(func() error {
				if err := is.bucket.DeleteFile(gctx, orphan.StorageKey); err != nil {
					is.log.Warn("Orphan object delete failed", "key", orphan.StorageKey, "error", err)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	ids := make([]uuid.UUID, 0, len(orphans))
	for _, orphan := range orphans {
		ids = append(ids, orphan.ID)
	}
	if err := is.imageRepo.DeleteByIDs(ctx, nil, ids); err != nil {
		return 0, fmt.Errorf("delete orphan rows: %w", err)
	}
	is.log.Info("Orphan image sweep finished", "removed", len(ids))
	return len(ids), nil
}
