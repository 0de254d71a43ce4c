package app

import (
	"fmt"

	"github.com/sageleaf/curricula-backend/internal/clients/gcs"
	"github.com/sageleaf/curricula-backend/internal/clients/openai"
	"github.com/sageleaf/curricula-backend/internal/clients/sendgrid"
	"github.com/sageleaf/curricula-backend/internal/logger"
)

type Clients struct {
	OpenAI openai.Client
	Bucket gcs.BucketService
	Mailer sendgrid.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	var bucket gcs.BucketService
	if cfg.BucketEnabled {
		bucket, err = gcs.NewBucketService(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init gcs bucket: %w", err)
		}
	} else {
		log.Warn("GCS_BUCKET_NAME not set, image storage disabled")
	}
	var mailer sendgrid.Client
	if cfg.MailerEnabled {
		mailer, err = sendgrid.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
		}
	} else {
		log.Warn("SENDGRID_API_KEY not set, confirmation emails disabled")
	}
	return Clients{OpenAI: ai, Bucket: bucket, Mailer: mailer}, nil
}
