package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength bounds message content, counted in runes, after
// whitespace trimming.
const MaxMessageLength = 2000

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`

	// Deleted hides the message from listings; rows are only hard-deleted
	// by the conversation-delete cascade.
	Deleted bool `gorm:"not null;default:false" json:"-"`

	Receipts []MessageReceipt `gorm:"constraint:OnDelete:CASCADE" json:"receipts,omitempty"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MessageReceipt records that a reader has seen a message. The sender's
// receipt is written together with the message itself.
type MessageReceipt struct {
	MessageID uuid.UUID `gorm:"type:uuid;primaryKey" json:"message_id"`
	ReaderID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"reader_id"`
	ReadAt    time.Time `gorm:"not null" json:"read_at"`
}

// ReadBy reports whether the preloaded receipts contain one for readerID.
func (m *Message) ReadBy(readerID uuid.UUID) bool {
	for _, r := range m.Receipts {
		if r.ReaderID == readerID {
			return true
		}
	}
	return false
}
