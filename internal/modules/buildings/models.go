package buildings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Building is a managed property belonging to an organization.
type Building struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Address        string         `gorm:"not null;size:500" json:"address"`
	City           string         `gorm:"size:100" json:"city,omitempty"`
	PostalCode     string         `gorm:"size:20" json:"postal_code,omitempty"`
	YearBuilt      *int           `json:"year_built,omitempty"`
	Notes          string         `gorm:"size:2000" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Unit is a rentable unit inside a building.
type Unit struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	BuildingID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"building_id"`
	Number         string          `gorm:"not null;size:20" json:"number"`
	Floor          *int            `json:"floor,omitempty"`
	Bedrooms       int             `gorm:"default:1" json:"bedrooms"`
	AreaSqm        float64         `gorm:"type:decimal(8,2)" json:"area_sqm,omitempty"`
	MonthlyRent    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"monthly_rent"`
	Occupied       bool            `gorm:"default:false" json:"occupied"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateBuildingRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	YearBuilt  *int   `json:"year_built"`
	Notes      string `json:"notes"`
}

type UpdateBuildingRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	YearBuilt  *int    `json:"year_built"`
	Notes      *string `json:"notes"`
}

type CreateUnitRequest struct {
	Number      string   `json:"number"`
	Floor       *int     `json:"floor"`
	Bedrooms    int      `json:"bedrooms"`
	AreaSqm     float64  `json:"area_sqm"`
	MonthlyRent *float64 `json:"monthly_rent"`
}

type UpdateUnitRequest struct {
	Number      *string  `json:"number"`
	Floor       *int     `json:"floor"`
	Bedrooms    *int     `json:"bedrooms"`
	AreaSqm     *float64 `json:"area_sqm"`
	MonthlyRent *float64 `json:"monthly_rent"`
	Occupied    *bool    `json:"occupied"`
}

type BuildingListResponse struct {
	Buildings []Building `json:"buildings"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
