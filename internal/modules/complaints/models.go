package complaints

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses.
const (
	StatusOpen      = "open"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

// Complaint is a resident-reported issue handled by the back office.
type Complaint struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID         *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	RenterID       *uuid.UUID     `gorm:"type:uuid;index" json:"renter_id,omitempty"`
	Subject        string         `gorm:"not null;size:255" json:"subject"`
	Body           string         `gorm:"size:4000" json:"body,omitempty"`
	Status         string         `gorm:"size:20;not null;default:'open';index" json:"status"`
	ResolutionNote string         `gorm:"size:2000" json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateComplaintRequest struct {
	UnitID   *uuid.UUID `json:"unit_id"`
	RenterID *uuid.UUID `json:"renter_id"`
	Subject  string     `json:"subject"`
	Body     string     `json:"body"`
}

type ResolveComplaintRequest struct {
	ResolutionNote string `json:"resolution_note"`
	Dismissed      bool   `json:"dismissed"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
