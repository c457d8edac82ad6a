package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TreeCondition is the recorded health state of a measured tree.
type TreeCondition string

const (
	TreeHealthy TreeCondition = "Sano"
	TreeSick    TreeCondition = "Enfermo"
	TreeDead    TreeCondition = "Muerto"
	TreeFallen  TreeCondition = "Caido"
)

// Tree is a single geotagged tree measurement inside a plot.
type Tree struct {
	ID               uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Code             string        `json:"code" gorm:"size:50;not null;index"`
	TreeNumber       int           `json:"tree_number"` // sequential within its plot
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	Altitude         *float64      `json:"altitude,omitempty"`
	DBH              float64       `json:"dbh"`    // diameter at breast height (cm)
	Height           float64       `json:"height"` // total height (m)
	CommercialHeight *float64      `json:"commercial_height,omitempty"` // m
	CrownDiameter    *float64      `json:"crown_diameter,omitempty"`    // m
	Condition        TreeCondition `json:"condition" gorm:"size:20;default:'Sano'"`
	Notes            string        `json:"notes,omitempty" gorm:"size:1000"`
	MeasuredAt       time.Time     `json:"measured_at"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
	Synced           bool          `json:"synced" gorm:"default:false;index"`
	SyncID           *uuid.UUID    `json:"sync_id,omitempty" gorm:"type:char(36)"`

	PlotID      uuid.UUID `json:"plot_id" gorm:"type:char(36);not null;index"`
	SpeciesID   uuid.UUID `json:"species_id" gorm:"type:char(36);not null;index"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:char(36);index"`

	// Relations
	Plot    *Plot    `json:"plot,omitempty" gorm:"foreignKey:PlotID"`
	Species *Species `json:"species,omitempty" gorm:"foreignKey:SpeciesID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (t *Tree) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BasalArea returns the basal area in m²: π·(DBH/2)²/10000.
func (t *Tree) BasalArea() float64 {
	return math.Pi * math.Pow(t.DBH/2, 2) / 10000
}

// Volume returns the stem volume in m³ using a 0.7 form factor.
func (t *Tree) Volume() float64 {
	return t.BasalArea() * t.Height * 0.7
}
