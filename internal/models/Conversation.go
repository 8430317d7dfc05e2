package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is the unique messaging thread between two users. The pair is
// normalized so User1ID < User2ID; the composite unique index makes
// find-or-create idempotent regardless of which side initiates.
type Conversation struct {
	gorm.Model
	User1ID uint `json:"user1_id" gorm:"uniqueIndex:idx_conversation_pair"`
	User2ID uint `json:"user2_id" gorm:"uniqueIndex:idx_conversation_pair"`
	User1   User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2   User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`

	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

// OtherParticipant returns the id of the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}
