package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Account binds one end user to one conversation. At most one account exists
// per conversation id; the unique index is the authority, not callers.
type Account struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID int64  `gorm:"column:conversation_id;not null;uniqueIndex" json:"conversation_id"`

	FirstName string `gorm:"column:first_name;not null;default:''" json:"first_name"`
	LastName  string `gorm:"column:last_name;not null;default:''" json:"last_name"`

	Verified      bool `gorm:"column:verified;not null;default:false" json:"verified"`
	DidOnboarding bool `gorm:"column:did_onboarding;not null;default:false" json:"did_onboarding"`

	// Location shared during onboarding, kept for downstream personalization.
	LastLocation datatypes.JSON `gorm:"column:last_location" json:"last_location,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

// NewID returns a time-ordered unique id (UUIDv7).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func NewAccount(conversationID int64, firstName, lastName string) *Account {
	return &Account{
		ID:             NewID(),
		ConversationID: conversationID,
		FirstName:      firstName,
		LastName:       lastName,
	}
}
