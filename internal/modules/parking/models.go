package parking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Spot is a parking space in a building that can be assigned to a renter.
type Spot struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	BuildingID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"building_id"`
	Number         string          `gorm:"not null;size:20" json:"number"`
	Level          *int            `json:"level,omitempty"`
	MonthlyFee     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"monthly_fee"`
	RenterID       *uuid.UUID      `gorm:"type:uuid;index" json:"renter_id,omitempty"`
	AssignedAt     *time.Time      `json:"assigned_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateSpotRequest struct {
	BuildingID uuid.UUID `json:"building_id"`
	Number     string    `json:"number"`
	Level      *int      `json:"level"`
	MonthlyFee *float64  `json:"monthly_fee"`
}

type AssignSpotRequest struct {
	RenterID uuid.UUID `json:"renter_id"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
