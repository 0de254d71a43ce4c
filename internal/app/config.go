package app

import (
	"strings"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string
	AllowOrigins []string

	// Optional integrations. Empty keys disable the feature instead of
	// failing startup.
	MailerEnabled bool
	BucketEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	originsRaw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	var origins []string
	for _, origin := range strings.Split(originsRaw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return Config{
		JWTSecretKey:  jwtSecretKey,
		AllowOrigins:  origins,
		MailerEnabled: utils.GetEnv("SENDGRID_API_KEY", "", log) != "",
		BucketEnabled: utils.GetEnv("GCS_BUCKET_NAME", "", log) != "",
	}
}
