package security

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Incident severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Incident statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Incident is a security event logged for a building: break-ins, vandalism,
// alarm triggers, access problems.
type Incident struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	BuildingID     *uuid.UUID     `gorm:"type:uuid;index" json:"building_id,omitempty"`
	Title          string         `gorm:"not null;size:255" json:"title"`
	Description    string         `gorm:"size:4000" json:"description,omitempty"`
	Severity       string         `gorm:"size:20;not null;default:'low';index" json:"severity"`
	Status         string         `gorm:"size:20;not null;default:'open';index" json:"status"`
	ReportedBy     string         `gorm:"size:255" json:"reported_by,omitempty"`
	OccurredAt     time.Time      `gorm:"not null" json:"occurred_at"`
	ClosureNote    string         `gorm:"size:2000" json:"closure_note,omitempty"`
	ClosedAt       *time.Time     `json:"closed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateIncidentRequest struct {
	BuildingID  *uuid.UUID `json:"building_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	ReportedBy  string     `json:"reported_by"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type CloseIncidentRequest struct {
	ClosureNote string `json:"closure_note"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
