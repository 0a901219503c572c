package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one immutable logged utterance. Rows are append-only; context
// construction orders by created_at ascending.
type Turn struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID int64  `gorm:"column:conversation_id;not null;index:idx_turn_conversation_created,priority:1" json:"conversation_id"`

	Content string `gorm:"column:content;type:text;not null;default:''" json:"content"`
	Role    Role   `gorm:"column:role;type:text;not null;index" json:"role"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index:idx_turn_conversation_created,priority:2" json:"created_at"`
}

func (Turn) TableName() string { return "turn" }

func NewTurn(conversationID int64, role Role, content string) *Turn {
	return &Turn{
		ID:             NewID(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
}
