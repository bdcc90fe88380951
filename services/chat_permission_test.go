package services

import (
	"testing"

	"github.com/craftfolio/api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(permission string) *models.User {
	return &models.User{
		ID:                uuid.New(),
		Username:          "user-" + uuid.NewString()[:8],
		MessagePermission: permission,
		AllowMessages:     true,
	}
}

func TestCanStartConversation(t *testing.T) {
	t.Run("everyone allows first contact", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)

		assert.NoError(t, CanStartConversation(sender, recipient))
	})

	t.Run("unset permission defaults to everyone", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser("")

		assert.NoError(t, CanStartConversation(sender, recipient))
	})

	t.Run("self conversation is rejected", func(t *testing.T) {
		u := newUser(models.MessagePermissionEveryone)

		err := CanStartConversation(u, u)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSelfConversation)
	})

	t.Run("recipient blocking sender is rejected", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		recipient.BlockedUsers = []*models.User{sender}

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrBlocked)
	})

	t.Run("sender blocking recipient is rejected", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		sender.BlockedUsers = []*models.User{recipient}

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrBlocked)
	})

	t.Run("block overrides an open permission level", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		recipient.Followers = []*models.User{sender}
		recipient.BlockedUsers = []*models.User{sender}

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrBlocked)
	})

	t.Run("none rejects first contact", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionNone)

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrMessagesDisabled)
	})

	t.Run("allow_messages false rejects regardless of level", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		recipient.AllowMessages = false

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrMessagesDisabled)
	})

	t.Run("existing always rejects first contact", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionExisting)
		// Even a mutual follow does not open a new conversation.
		recipient.Followers = []*models.User{sender}
		recipient.Following = []*models.User{sender}

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrExistingOnly)
	})

	t.Run("followers accepts a sender the recipient follows", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionFollowers)
		recipient.Following = []*models.User{sender}

		assert.NoError(t, CanStartConversation(sender, recipient))
	})

	t.Run("followers accepts a sender who follows the recipient", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionFollowers)
		recipient.Followers = []*models.User{sender}

		assert.NoError(t, CanStartConversation(sender, recipient))
	})

	t.Run("followers rejects when neither direction holds", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionFollowers)

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrFollowersOnly)
	})

	t.Run("unknown level is rejected", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser("friends")

		assert.ErrorIs(t, CanStartConversation(sender, recipient), ErrUnknownPermission)
	})
}

func TestCanMessage(t *testing.T) {
	t.Run("existing conversations accept sends for most levels", func(t *testing.T) {
		for _, level := range []string{
			models.MessagePermissionEveryone,
			models.MessagePermissionFollowers,
			models.MessagePermissionExisting,
			"",
		} {
			sender := newUser(models.MessagePermissionEveryone)
			recipient := newUser(level)

			assert.NoError(t, CanMessage(sender, recipient), "level %q", level)
		}
	})

	t.Run("none blocks sends even into existing conversations", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionNone)

		assert.ErrorIs(t, CanMessage(sender, recipient), ErrMessagesDisabled)
	})

	t.Run("allow_messages false blocks sends", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		recipient.AllowMessages = false

		assert.ErrorIs(t, CanMessage(sender, recipient), ErrMessagesDisabled)
	})

	t.Run("a later block cuts off an existing conversation", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionEveryone)
		recipient.BlockedUsers = []*models.User{sender}

		assert.ErrorIs(t, CanMessage(sender, recipient), ErrBlocked)

		// And symmetrically for the blocker trying to keep sending.
		recipient.BlockedUsers = nil
		sender.BlockedUsers = []*models.User{recipient}
		assert.ErrorIs(t, CanMessage(sender, recipient), ErrBlocked)
	})

	t.Run("followers level does not require an edge for sends", func(t *testing.T) {
		sender := newUser(models.MessagePermissionEveryone)
		recipient := newUser(models.MessagePermissionFollowers)

		assert.NoError(t, CanMessage(sender, recipient))
	})
}
