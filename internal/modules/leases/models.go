package leases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Renter is a tenant person renting one or more units.
type Renter struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	FullName       string         `gorm:"not null;size:255" json:"full_name"`
	Email          string         `gorm:"size:255;index" json:"email,omitempty"`
	Phone          string         `gorm:"size:50" json:"phone,omitempty"`
	Notes          string         `gorm:"size:2000" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Lease status values.
const (
	LeaseStatusActive     = "active"
	LeaseStatusEnded      = "ended"
	LeaseStatusTerminated = "terminated"
)

// Lease binds a renter to a unit for a period at a monthly rent.
type Lease struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"unit_id"`
	RenterID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"renter_id"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	MonthlyRent    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"monthly_rent"`
	DepositAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"deposit_amount"`
	Status         string          `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateRenterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

type UpdateRenterRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
}

type CreateLeaseRequest struct {
	UnitID        uuid.UUID  `json:"unit_id"`
	RenterID      uuid.UUID  `json:"renter_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	MonthlyRent   float64    `json:"monthly_rent"`
	DepositAmount *float64   `json:"deposit_amount"`
}

type UpdateLeaseRequest struct {
	EndDate       *time.Time `json:"end_date"`
	MonthlyRent   *float64   `json:"monthly_rent"`
	DepositAmount *float64   `json:"deposit_amount"`
}

type EndLeaseRequest struct {
	EndDate    *time.Time `json:"end_date"`
	Terminated bool       `json:"terminated"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
