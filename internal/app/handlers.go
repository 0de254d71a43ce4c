package app

import (
	"github.com/sageleaf/curricula-backend/internal/handlers"
	"github.com/sageleaf/curricula-backend/internal/logger"
)

type Handlers struct {
	Healthcheck    *handlers.HealthcheckHandler
	Diag           *handlers.DiagHandler
	Profile        *handlers.ProfileHandler
	Curriculum     *handlers.CurriculumHandler
	Session        *handlers.SessionHandler
	Image          *handlers.ImageHandler
	ExpertInterest *handlers.ExpertInterestHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck:    handlers.NewHealthcheckHandler(),
		Diag:           handlers.NewDiagHandler(),
		Profile:        handlers.NewProfileHandler(log, s.User),
		Curriculum:     handlers.NewCurriculumHandler(log, s.User, s.Curriculum, s.CurriculumGeneration),
		Session:        handlers.NewSessionHandler(log, s.Session, s.SessionGeneration),
		Image:          handlers.NewImageHandler(log, s.Image),
		ExpertInterest: handlers.NewExpertInterestHandler(log, s.ExpertInterest),
	}
}
