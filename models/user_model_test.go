package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserEdgeHelpers(t *testing.T) {
	alice := &User{ID: uuid.New(), Username: "alice"}
	bob := &User{ID: uuid.New(), Username: "bob"}
	carol := &User{ID: uuid.New(), Username: "carol"}

	alice.Following = []*User{bob}
	alice.Followers = []*User{carol}
	alice.BlockedUsers = []*User{carol}

	t.Run("follows", func(t *testing.T) {
		assert.True(t, alice.Follows(bob.ID))
		assert.False(t, alice.Follows(carol.ID))
	})

	t.Run("is followed by", func(t *testing.T) {
		assert.True(t, alice.IsFollowedBy(carol.ID))
		assert.False(t, alice.IsFollowedBy(bob.ID))
	})

	t.Run("has blocked", func(t *testing.T) {
		assert.True(t, alice.HasBlocked(carol.ID))
		assert.False(t, alice.HasBlocked(bob.ID))
	})

	t.Run("empty edge sets", func(t *testing.T) {
		assert.False(t, bob.Follows(alice.ID))
		assert.False(t, bob.HasBlocked(alice.ID))
		assert.False(t, bob.IsFollowedBy(alice.ID))
	})
}

func TestUserPublic(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	u := &User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Liddell",
		AvatarURL: &avatar,
	}

	p := u.Public()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "Alice Liddell", p.FullName)
	assert.Equal(t, &avatar, p.AvatarURL)
}
