package handlers

import (
	"testing"
	"time"

	"github.com/craftfolio/api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReverseMessages(t *testing.T) {
	makeMessages := func(n int) []models.Message {
		base := time.Now()
		messages := make([]models.Message, 0, n)
		// Newest first, the order the store hands back pages in.
		for i := 0; i < n; i++ {
			messages = append(messages, models.Message{
				ID:        uuid.New(),
				Content:   "m",
				CreatedAt: base.Add(-time.Duration(i) * time.Minute),
			})
		}
		return messages
	}

	t.Run("reverses to chronological order", func(t *testing.T) {
		messages := makeMessages(5)
		reverseMessages(messages)

		for i := 1; i < len(messages); i++ {
			assert.True(t, messages[i].CreatedAt.After(messages[i-1].CreatedAt))
		}
	})

	t.Run("even length", func(t *testing.T) {
		messages := makeMessages(4)
		first, last := messages[0].ID, messages[3].ID
		reverseMessages(messages)

		assert.Equal(t, last, messages[0].ID)
		assert.Equal(t, first, messages[3].ID)
	})

	t.Run("empty and single element are no-ops", func(t *testing.T) {
		reverseMessages(nil)

		single := makeMessages(1)
		id := single[0].ID
		reverseMessages(single)
		assert.Equal(t, id, single[0].ID)
	})
}
