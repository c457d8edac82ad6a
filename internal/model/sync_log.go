package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncType distinguishes upload, download and full synchronizations from the field app.
type SyncType string

const (
	SyncUpload   SyncType = "Upload"
	SyncDownload SyncType = "Download"
	SyncFull     SyncType = "Full"
)

// SyncLog records one synchronization attempt by the mobile field app.
type SyncLog struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Type            SyncType  `json:"type" gorm:"size:20;not null"`
	SyncedAt        time.Time `json:"synced_at"`
	RecordsSent     int       `json:"records_sent"`
	RecordsReceived int       `json:"records_received"`
	Success         bool      `json:"success" gorm:"index"`
	ErrorMessage    string    `json:"error_message,omitempty" gorm:"size:1000"`
	Details         string    `json:"details,omitempty" gorm:"size:2000"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (l *SyncLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
