package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMessageReadBy(t *testing.T) {
	sender := uuid.New()
	reader := uuid.New()

	msg := Message{
		ID:       uuid.New(),
		SenderID: sender,
		Content:  "hello",
		Receipts: []MessageReceipt{
			{ReaderID: sender, ReadAt: time.Now()},
		},
	}

	t.Run("sender receipt is present from creation", func(t *testing.T) {
		assert.True(t, msg.ReadBy(sender))
	})

	t.Run("other reader unread until receipted", func(t *testing.T) {
		assert.False(t, msg.ReadBy(reader))

		msg.Receipts = append(msg.Receipts, MessageReceipt{ReaderID: reader, ReadAt: time.Now()})
		assert.True(t, msg.ReadBy(reader))
	})
}
