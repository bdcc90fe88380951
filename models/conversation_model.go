package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the single record for an unordered pair of users.
// UserOneID/UserTwoID are stored in canonical order (see OrderPair) so the
// composite unique index enforces at-most-one conversation per pair.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserOneID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_one_id"`
	UserTwoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_two_id"`

	LastMessageID *uuid.UUID `gorm:"type:uuid" json:"last_message_id"`
	LastMessageAt *time.Time `json:"last_message_at"`

	UserOne      User                      `gorm:"foreignkey:UserOneID" json:"-"`
	UserTwo      User                      `gorm:"foreignkey:UserTwoID" json:"-"`
	LastMessage  *Message                  `gorm:"foreignkey:LastMessageID;constraint:OnDelete:SET NULL" json:"last_message,omitempty"`
	Participants []ConversationParticipant `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationParticipant holds per-participant conversation state. A
// missing row reads as an unread count of zero (see UnreadFor).
type ConversationParticipant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	UnreadCount    int       `gorm:"not null;default:0" json:"unread_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderPair returns the two ids in canonical storage order, smaller uuid
// string first. OrderPair(a, b) == OrderPair(b, a) for all pairs, which is
// what makes the unique index on (UserOneID, UserTwoID) a pair constraint.
func OrderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.UserOneID == userID || c.UserTwoID == userID
}

// OtherParticipant returns the participant that is not userID. userID must
// be a participant.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.UserOneID == userID {
		return c.UserTwoID
	}
	return c.UserOneID
}

// UnreadFor looks up userID's unread counter in the preloaded participant
// rows. Missing row means zero.
func (c *Conversation) UnreadFor(userID uuid.UUID) int {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return p.UnreadCount
		}
	}
	return 0
}
