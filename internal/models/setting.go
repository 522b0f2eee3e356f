package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting stores per-organization configuration values surfaced to the
// back-office UI (branding, locale, notification toggles).
type Setting struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_settings_org_key,priority:1" json:"organization_id"`
	Key            string    `gorm:"size:100;not null;uniqueIndex:idx_settings_org_key,priority:2" json:"key"`
	Value          string    `gorm:"type:text;not null" json:"value"`
	Type           string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, json
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Setting) TableName() string {
	return "settings"
}
