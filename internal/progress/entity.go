package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"gorm.io/gorm"
)

// XP awarded per event.
const (
	XPMessage       = 10
	XPTestGenerated = 5
	XPTestSubmitted = 20
)

type Record struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         string      `gorm:"type:text;not null;uniqueIndex:idx_progress_owner_language" json:"owner_id"`
	Language        string      `gorm:"type:text;not null;uniqueIndex:idx_progress_owner_language" json:"language"`
	Level           level.Level `gorm:"type:text;not null" json:"level"`
	XPPoints        int64       `gorm:"not null;default:0" json:"xp_points"`
	MessagesSent    int64       `gorm:"not null;default:0" json:"messages_sent"`
	LastInteraction time.Time   `gorm:"not null" json:"last_interaction"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Record) TableName() string {
	return "progress_records"
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
