package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	FirebaseUID string                      `gorm:"type:text;not null;uniqueIndex" json:"firebase_uid"`
	Email       string                      `gorm:"type:text;not null" json:"email"`
	Username    string                      `gorm:"type:text;not null" json:"username"`
	Languages   datatypes.JSONSlice[string] `gorm:"type:json" json:"languages"`
	Active      bool                        `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time                   `json:"created_at"`
	LastLogin   *time.Time                  `json:"last_login,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
