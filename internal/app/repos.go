package app

import (
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
)

type Repos struct {
	UserProfile     repos.UserProfileRepo
	Curriculum      repos.CurriculumRepo
	LearningSession repos.LearningSessionRepo
	SessionImage    repos.SessionImageRepo
	ExpertInterest  repos.ExpertInterestRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		UserProfile:     repos.NewUserProfileRepo(db, log),
		Curriculum:      repos.NewCurriculumRepo(db, log),
		LearningSession: repos.NewLearningSessionRepo(db, log),
		SessionImage:    repos.NewSessionImageRepo(db, log),
		ExpertInterest:  repos.NewExpertInterestRepo(db, log),
	}
}
