package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RatingLike    = "like"
	RatingDislike = "dislike"
)

// Review is one rating per (project, author) pair; a second submission by
// the same author updates the existing row.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_project_author" json:"project_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_project_author" json:"author_id"`

	Rating  string  `gorm:"size:10;not null" json:"rating"`
	Comment *string `gorm:"size:1000" json:"comment"`

	Author User `gorm:"foreignkey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
