package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessagePermissionEveryone  = "everyone"
	MessagePermissionFollowers = "followers"
	MessagePermissionExisting  = "existing"
	MessagePermissionNone      = "none"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"size:30;not null;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	FullName  string  `gorm:"size:255" json:"full_name"`
	Bio       *string `gorm:"type:text" json:"bio"`
	AvatarURL *string `gorm:"size:255" json:"avatar_url"`
	Website   *string `gorm:"size:255" json:"website"`
	Location  *string `gorm:"size:100" json:"location"`
	Skills    *string `gorm:"type:text" json:"skills"`

	// Social graph. Follows are directed; a row in user_follows means
	// FollowerID follows FollowingID. Blocks are directed the same way.
	Followers    []*User `gorm:"many2many:user_follows;joinForeignKey:FollowingID;joinReferences:FollowerID" json:"-"`
	Following    []*User `gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FollowingID" json:"-"`
	BlockedUsers []*User `gorm:"many2many:user_blocks;joinForeignKey:BlockerID;joinReferences:BlockedID" json:"-"`

	MessagePermission string `gorm:"size:20;not null;default:'everyone'" json:"message_permission"`
	AllowMessages     bool   `gorm:"not null;default:true" json:"allow_messages"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the shape of a user embedded in responses seen by
// other users (conversation lists, reviews, follower lists).
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// HasBlocked reports whether u has blocked other. It only consults the
// preloaded BlockedUsers edge set.
func (u *User) HasBlocked(other uuid.UUID) bool {
	for _, blocked := range u.BlockedUsers {
		if blocked.ID == other {
			return true
		}
	}
	return false
}

// IsFollowedBy reports whether other appears in u's preloaded followers.
func (u *User) IsFollowedBy(other uuid.UUID) bool {
	for _, follower := range u.Followers {
		if follower.ID == other {
			return true
		}
	}
	return false
}

// Follows reports whether u follows other, per the preloaded Following set.
func (u *User) Follows(other uuid.UUID) bool {
	for _, followed := range u.Following {
		if followed.ID == other {
			return true
		}
	}
	return false
}
