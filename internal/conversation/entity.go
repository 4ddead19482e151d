package conversation

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Conversation struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   string      `gorm:"type:text;not null;index" json:"owner_id"`
	Language  string      `gorm:"type:text;not null" json:"language"`
	Level     level.Level `gorm:"type:text;not null" json:"level"`
	Title     string      `gorm:"type:text" json:"title"`
	Active    bool        `gorm:"not null" json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Turns []Turn `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"turns"`
}

// Turn is never updated after insert; Position orders turns inside a conversation.
type Turn struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_turn_position" json:"conversation_id"`
	Position       int       `gorm:"not null;uniqueIndex:idx_turn_position" json:"position"`
	Role           Role      `gorm:"type:text;not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Language       string    `gorm:"type:text;not null" json:"language"`
	Timestamp      time.Time `gorm:"not null" json:"timestamp"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (t *Turn) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func NewTurn(role Role, content, language string, at time.Time) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		Language:  language,
		Timestamp: at,
	}
}

// Append assigns positions and the conversation id to turns and adds them to c.
// It returns the appended turns as stored on c.
func (c *Conversation) Append(turns ...Turn) []Turn {
	start := len(c.Turns)
	for i := range turns {
		turns[i].ConversationID = c.ID
		turns[i].Position = start + i
		c.Turns = append(c.Turns, turns[i])
	}
	if n := len(c.Turns); n > 0 {
		c.UpdatedAt = c.Turns[n-1].Timestamp
	}
	return c.Turns[start:]
}

func (c *Conversation) LastTurn() (Turn, bool) {
	if len(c.Turns) == 0 {
		return Turn{}, false
	}
	return c.Turns[len(c.Turns)-1], true
}

// Summary is the list view of a conversation, without turns.
type Summary struct {
	ID        uuid.UUID   `json:"id"`
	Language  string      `json:"language"`
	Level     level.Level `json:"level"`
	Title     string      `json:"title"`
	Active    bool        `json:"active"`
	TurnCount int         `json:"turn_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
