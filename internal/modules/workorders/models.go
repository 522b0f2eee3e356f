package workorders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work order status flow: open -> in_progress -> done, or cancelled.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// WorkOrder is a maintenance task raised against a building or unit.
type WorkOrder struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	BuildingID     *uuid.UUID     `gorm:"type:uuid;index" json:"building_id,omitempty"`
	UnitID         *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Title          string         `gorm:"not null;size:255" json:"title"`
	Description    string         `gorm:"size:4000" json:"description,omitempty"`
	Priority       string         `gorm:"size:20;not null;default:'medium'" json:"priority"`
	Status         string         `gorm:"size:20;not null;default:'open';index" json:"status"`
	AssignedTo     *uuid.UUID     `gorm:"type:uuid" json:"assigned_to,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateWorkOrderRequest struct {
	BuildingID  *uuid.UUID `json:"building_id"`
	UnitID      *uuid.UUID `json:"unit_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

type UpdateWorkOrderRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
