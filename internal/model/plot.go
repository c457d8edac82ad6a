package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plot is a sampled forest area (parcela) that trees are measured in.
type Plot struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Code        string     `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Name        string     `json:"name" gorm:"size:255;not null"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Altitude    *float64   `json:"altitude,omitempty"`
	AreaHa      float64    `json:"area_ha"` // hectares
	Description string     `json:"description,omitempty" gorm:"size:1000"`
	Location    string     `json:"location,omitempty" gorm:"size:255"`
	Active      bool       `json:"active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:char(36);index"`

	// Relations
	Trees []Tree `json:"trees,omitempty" gorm:"foreignKey:PlotID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (p *Plot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
