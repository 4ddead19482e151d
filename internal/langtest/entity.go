package langtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Test struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        string            `gorm:"type:text;not null;index" json:"owner_id"`
	ConversationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Language       string            `gorm:"type:text;not null" json:"language"`
	Level          level.Level       `gorm:"type:text;not null" json:"level"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	Results        datatypes.JSONMap `gorm:"type:json" json:"results,omitempty"`

	Questions []Question `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions"`
}

type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	TestID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"test_id"`
	OrderIndex    int                         `gorm:"not null" json:"order_index"`
	Text          string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json;not null" json:"options"`
	CorrectAnswer string                      `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   string                      `gorm:"type:text" json:"explanation"`
	Topic         string                      `gorm:"type:text" json:"topic"`
	Difficulty    level.Level                 `gorm:"type:text;not null" json:"difficulty"`
}

func (Test) TableName() string {
	return "language_tests"
}

func (Question) TableName() string {
	return "language_test_questions"
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (t *Test) Completed() bool {
	return t.CompletedAt != nil
}

// Summary is the list view of a test, without questions.
type Summary struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	Language       string      `json:"language"`
	Level          level.Level `json:"level"`
	CreatedAt      time.Time   `json:"created_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}
