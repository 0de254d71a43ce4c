package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CurriculumStatus is the single lifecycle field for a curriculum. Legal
// transitions are enforced by services.CurriculumService, nowhere else.
type CurriculumStatus string

const (
	CurriculumPendingApproval CurriculumStatus = "pending_approval"
	CurriculumActive          CurriculumStatus = "active"
	CurriculumCompleted       CurriculumStatus = "completed"
	CurriculumRejected        CurriculumStatus = "rejected"
)

type Curriculum struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *UserProfile     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Subject      string           `gorm:"column:subject;not null" json:"subject"`
	SkillLevel   string           `gorm:"column:skill_level" json:"skill_level"`
	Goals        string           `gorm:"column:goals;type:text" json:"goals"`
	Background   datatypes.JSON   `gorm:"column:background;type:jsonb" json:"background"`
	Availability datatypes.JSON   `gorm:"column:availability;type:jsonb" json:"availability"`
	Plan         datatypes.JSON   `gorm:"column:plan;type:jsonb" json:"plan"`
	Status       CurriculumStatus `gorm:"column:status;not null;default:pending_approval;index" json:"status"`

	// Denormalized from Plan for list views.
	Title        string  `gorm:"column:title" json:"title"`
	TotalHours   float64 `gorm:"column:total_hours;not null;default:0" json:"total_hours"`
	SessionCount int     `gorm:"column:session_count;not null;default:0" json:"session_count"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Curriculum) TableName() string { return "curriculum" }
