package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningSession struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CurriculumID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uq_learning_session_number" json:"curriculum_id"`
	Curriculum    *Curriculum    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CurriculumID;references:ID" json:"curriculum,omitempty"`
	SessionNumber int            `gorm:"column:session_number;not null;uniqueIndex:uq_learning_session_number" json:"session_number"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Content       datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`
	Completed     bool           `gorm:"column:completed;not null;default:false" json:"completed"`
	CompletedAt   *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningSession) TableName() string { return "learning_session" }
