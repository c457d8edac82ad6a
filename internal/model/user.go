package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that can log in to the system.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	FullName     string     `json:"full_name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role       `json:"role" gorm:"not null;index"`
	Active       bool       `json:"active" gorm:"default:true;index"`
	Phone        string     `json:"phone,omitempty" gorm:"size:50"`
	Organization string     `json:"organization,omitempty" gorm:"size:255"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`

	// Relations
	Plots []Plot `json:"plots,omitempty" gorm:"foreignKey:CreatedByID"`
	Trees []Tree `json:"trees,omitempty" gorm:"foreignKey:CreatedByID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
