package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a property-management company using the back office.
// All tenant-scoped records carry its ID.
type Organization struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Slug         string    `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	ContactEmail string    `gorm:"size:255" json:"contact_email"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}
