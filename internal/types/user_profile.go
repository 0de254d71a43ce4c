package types

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subject           string    `gorm:"uniqueIndex;not null;column:subject" json:"-"`
	Email             string    `gorm:"not null;column:email" json:"email"`
	FirstName         string    `gorm:"column:first_name" json:"first_name"`
	Background        string    `gorm:"column:background;type:text" json:"background"`
	Interests         string    `gorm:"column:interests;type:text" json:"interests"`
	Experience        string    `gorm:"column:experience;type:text" json:"experience"`
	Goals             string    `gorm:"column:goals;type:text" json:"goals"`
	LearningSubject   string    `gorm:"column:learning_subject" json:"learning_subject"`
	SkillLevel        string    `gorm:"column:skill_level" json:"skill_level"`
	TotalWeeks        int       `gorm:"column:total_weeks;not null;default:0" json:"total_weeks"`
	SessionsPerWeek   int       `gorm:"column:sessions_per_week;not null;default:0" json:"sessions_per_week"`
	SessionLengthMins int       `gorm:"column:session_length_mins;not null;default:0" json:"session_length_mins"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
