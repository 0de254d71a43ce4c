package handlers

import (
	"os"

	"github.com/gin-gonic/gin"
)

type DiagHandler struct{}

func NewDiagHandler() *DiagHandler {
	return &DiagHandler{}
}

// Diag reports which pieces of external configuration are present. Values are
// never echoed back, only presence.
func (h *DiagHandler) Diag(c *gin.Context) {
	RespondOK(c, gin.H{
		"database": gin.H{
			"postgres_host":     envSet("POSTGRES_HOST"),
			"postgres_port":     envSet("POSTGRES_PORT"),
			"postgres_user":     envSet("POSTGRES_USER"),
			"postgres_password": envSet("POSTGRES_PASSWORD"),
			"postgres_name":     envSet("POSTGRES_NAME"),
		},
		"jwt_secret": envSet("JWT_SECRET_KEY"),
		"openai":     envSet("OPENAI_API_KEY"),
		"gcs_bucket": envSet("GCS_BUCKET_NAME"),
		"sendgrid":   envSet("SENDGRID_API_KEY"),
		"cdn_domain": envSet("CDN_DOMAIN"),
		"log_mode":   envSet("LOG_MODE"),
	})
}

func envSet(key string) bool {
	return os.Getenv(key) != ""
}
