package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Species is a catalog entry for a tree species.
type Species struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CommonName     string    `json:"common_name" gorm:"size:255;not null;index"`
	ScientificName string    `json:"scientific_name" gorm:"size:255;not null"`
	Family         string    `json:"family,omitempty" gorm:"size:255"`
	Description    string    `json:"description,omitempty" gorm:"size:1000"`
	WoodDensity    *float64  `json:"wood_density,omitempty"` // kg/m³
	Active         bool      `json:"active" gorm:"default:true;index"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Trees []Tree `json:"trees,omitempty" gorm:"foreignKey:SpeciesID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (s *Species) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
