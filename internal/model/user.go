package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. PasswordHash is nullable: accounts
// created through an identity-federation path carry no local password and
// cannot authenticate with credentials.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255"` // Never expose in JSON
	Image        string    `json:"image,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AuthorProfile is the public projection of a User attached to posts.
// It reads from the users table but carries only the fields safe to list.
type AuthorProfile struct {
	ID    uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TableName maps the projection onto the users table.
func (AuthorProfile) TableName() string {
	return "users"
}
