package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`

	CoverImageURL *string `gorm:"size:255" json:"cover_image_url"`
	DemoLink      *string `gorm:"size:255" json:"demo_link"`
	RepoLink      *string `gorm:"size:255" json:"repo_link"`
	Tags          *string `gorm:"size:255" json:"tags"`

	// Likes toggle membership in project_likes. ViewedBy dedups views for
	// authenticated visitors only; anonymous views bump ViewCount directly.
	Likes     []*User `gorm:"many2many:project_likes;" json:"-"`
	ViewCount int     `gorm:"not null;default:0" json:"view_count"`
	ViewedBy  []*User `gorm:"many2many:project_views;" json:"-"`

	Images []ProjectImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`

	Owner    User     `gorm:"foreignkey:OwnerID" json:"owner,omitempty"`
	Category Category `gorm:"foreignkey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports membership in the preloaded like set.
func (p *Project) LikedBy(userID uuid.UUID) bool {
	for _, u := range p.Likes {
		if u.ID == userID {
			return true
		}
	}
	return false
}
