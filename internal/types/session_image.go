package types

import (
	"time"

	"github.com/google/uuid"
)

type SessionImage struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Session       *LearningSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	StorageKey    string           `gorm:"column:storage_key;uniqueIndex;not null" json:"storage_key"`
	MimeType      string           `gorm:"column:mime_type;not null;default:image/png" json:"mime_type"`
	PublicURL     string           `gorm:"column:public_url" json:"public_url"`
	Prompt        string           `gorm:"column:prompt;type:text" json:"prompt"`
	RevisedPrompt string           `gorm:"column:revised_prompt;type:text" json:"revised_prompt"`
	CreatedAt     time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (SessionImage) TableName() string { return "session_image" }
