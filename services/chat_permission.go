package services

import (
	"errors"

	"github.com/craftfolio/api/models"
)

// Chat permission decisions. Callers must pass users with their
// Followers/Following/BlockedUsers edges preloaded; these functions never
// touch the database.

var (
	ErrSelfConversation  = errors.New("cannot start a conversation with yourself")
	ErrBlocked           = errors.New("messaging is not available between these users")
	ErrMessagesDisabled  = errors.New("this user does not accept messages")
	ErrFollowersOnly     = errors.New("this user only accepts messages from people they follow or who follow them")
	ErrExistingOnly      = errors.New("this user only accepts messages in existing conversations")
	ErrUnknownPermission = errors.New("unknown message permission setting")
)

// CanStartConversation decides whether sender may open a new conversation
// with recipient. It assumes no conversation between the two exists; an
// existing conversation skips this gate entirely and is governed by
// CanMessage instead.
func CanStartConversation(sender, recipient *models.User) error {
	if sender.ID == recipient.ID {
		return ErrSelfConversation
	}
	if sender.HasBlocked(recipient.ID) || recipient.HasBlocked(sender.ID) {
		return ErrBlocked
	}
	if !recipient.AllowMessages {
		return ErrMessagesDisabled
	}

	switch recipient.MessagePermission {
	case models.MessagePermissionEveryone, "":
		return nil
	case models.MessagePermissionNone:
		return ErrMessagesDisabled
	case models.MessagePermissionExisting:
		// First contact by definition; only a pre-existing conversation
		// satisfies this level.
		return ErrExistingOnly
	case models.MessagePermissionFollowers:
		// Either follow direction qualifies.
		if recipient.IsFollowedBy(sender.ID) || recipient.Follows(sender.ID) {
			return nil
		}
		return ErrFollowersOnly
	default:
		return ErrUnknownPermission
	}
}

// CanMessage decides whether sender may send into a conversation with
// recipient that already exists. Blocks and the "none" level are re-checked
// on every send; all other levels always allow sends into existing
// conversations.
func CanMessage(sender, recipient *models.User) error {
	if sender.HasBlocked(recipient.ID) || recipient.HasBlocked(sender.ID) {
		return ErrBlocked
	}
	if !recipient.AllowMessages || recipient.MessagePermission == models.MessagePermissionNone {
		return ErrMessagesDisabled
	}
	return nil
}
