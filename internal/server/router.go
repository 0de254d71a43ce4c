package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/handlers"
	"github.com/sageleaf/curricula-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins []string

	AuthMiddleware        *middleware.AuthMiddleware
	HealthcheckHandler    *handlers.HealthcheckHandler
	DiagHandler           *handlers.DiagHandler
	ProfileHandler        *handlers.ProfileHandler
	CurriculumHandler     *handlers.CurriculumHandler
	SessionHandler        *handlers.SessionHandler
	ImageHandler          *handlers.ImageHandler
	ExpertInterestHandler *handlers.ExpertInterestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	api := router.Group("/api")
	api.POST("/expert-interest", cfg.ExpertInterestHandler.Signup)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Profile
	protected.GET("/profile", cfg.ProfileHandler.GetProfile)
	protected.PUT("/profile", cfg.ProfileHandler.UpdateProfile)
	// Generation. These live under their own prefix so the curriculum and
	// session trees keep a single wildcard segment.
	protected.POST("/generate/prompt", cfg.CurriculumHandler.GeneratePrompt)
	protected.POST("/generate/curriculum", cfg.CurriculumHandler.Generate)
	protected.POST("/generate/session", cfg.SessionHandler.Generate)
	protected.POST("/generate/image", cfg.ImageHandler.Generate)
	// Curriculum
	protected.GET("/curriculum", cfg.CurriculumHandler.List)
	protected.GET("/curriculum/:id", cfg.CurriculumHandler.Get)
	protected.POST("/curriculum/:id/approve", cfg.CurriculumHandler.Approve)
	protected.POST("/curriculum/:id/reject", cfg.CurriculumHandler.Reject)
	protected.POST("/curriculum/:id/complete", cfg.CurriculumHandler.Complete)
	// Sessions
	protected.GET("/sessions/:id", cfg.SessionHandler.Get)
	protected.POST("/sessions/:id/complete", cfg.SessionHandler.SetCompleted)
	protected.GET("/sessions/:id/download", cfg.SessionHandler.Download)
	// Images
	protected.GET("/images/:id", cfg.ImageHandler.Get)
	protected.DELETE("/images/:id", cfg.ImageHandler.Delete)
	protected.POST("/images/cleanup", cfg.ImageHandler.Cleanup)
	// Diagnostics
	protected.GET("/diag", cfg.DiagHandler.Diag)

	return router
}
