package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog entry. AuthorID, ID and CreatedAt are immutable after
// creation; only the author may change Title, Content and Published.
// Unpublished posts are drafts visible only to their author.
type Post struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string         `json:"title" gorm:"size:150;not null"`
	Content   string         `json:"content" gorm:"type:text"`
	Published bool           `json:"published" gorm:"default:false;index"`
	AuthorID  uuid.UUID      `json:"author_id" gorm:"type:char(36);not null;index"`
	Author    *AuthorProfile `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
