package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a back-office account scoped to one organization. Role is one of
// user, manager, admin.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_users_org_email" json:"-"`
	Email          string         `gorm:"not null;size:255;uniqueIndex:idx_users_org_email" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	FullName       string         `gorm:"size:255" json:"full_name"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
