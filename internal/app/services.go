package app

import (
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type Services struct {
	Auth                 services.AuthService
	User                 services.UserService
	Curriculum           services.CurriculumService
	CurriculumGeneration services.CurriculumGenerationService
	Session              services.SessionService
	SessionGeneration    services.SessionGenerationService
	Image                services.ImageService
	ExpertInterest       services.ExpertInterestService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) Services {
	log.Info("Wiring services...")
	promptCfg := services.DefaultPromptConfig()
	guard := services.NewOwnershipGuard(r.Curriculum, r.LearningSession)
	return Services{
		Auth:       services.NewAuthService(db, log, r.UserProfile, cfg.JWTSecretKey),
		User:       services.NewUserService(db, log, r.UserProfile),
		Curriculum: services.NewCurriculumService(db, log, guard, r.Curriculum, r.LearningSession),
		CurriculumGeneration: services.NewCurriculumGenerationService(
			db, log, promptCfg, r.Curriculum, clients.OpenAI),
		Session: services.NewSessionService(db, log, guard, r.LearningSession),
		SessionGeneration: services.NewSessionGenerationService(
			db, log, promptCfg, guard, r.UserProfile, r.LearningSession, clients.OpenAI),
		Image:          services.NewImageService(db, log, guard, r.SessionImage, clients.Bucket, clients.OpenAI),
		ExpertInterest: services.NewExpertInterestService(db, log, r.ExpertInterest, clients.Mailer),
	}
}
