package app

import (
	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:          cfg.AllowOrigins,
		AuthMiddleware:        m.Auth,
		HealthcheckHandler:    h.Healthcheck,
		DiagHandler:           h.Diag,
		ProfileHandler:        h.Profile,
		CurriculumHandler:     h.Curriculum,
		SessionHandler:        h.Session,
		ImageHandler:          h.Image,
		ExpertInterestHandler: h.ExpertInterest,
	})
}
