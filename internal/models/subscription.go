package models

import (
	"time"

	"github.com/estateops/backend/internal/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Subscription is an organization's paid-plan record. It is never deleted;
// cancellation is a status transition.
//
// Price is the derived per-cycle amount actually charged. It always equals
// the discount function applied to BasePrice unless the caller supplied an
// explicit override, in which case Price is authoritative and the base and
// discount columns hold whatever was provided.
type Subscription struct {
	ID             uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID             `gorm:"type:uuid;not null;index" json:"organization_id"`
	Tier           billing.Tier          `gorm:"not null;size:50" json:"tier"`
	Status         billing.Status        `gorm:"not null;default:'active';size:50;index" json:"status"`
	BillingCycle   billing.Cycle         `gorm:"not null;size:50" json:"billing_cycle"`
	BasePrice      decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"base_price"`
	DiscountType   *billing.DiscountType `gorm:"size:20" json:"discount_type"`
	DiscountValue  decimal.NullDecimal   `gorm:"type:numeric(12,2)" json:"discount_value"`
	Price          decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency       string                `gorm:"size:3;not null;default:'USD'" json:"currency"`

	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	TrialEndDate    *time.Time `json:"trial_end_date"`
	NextBillingDate *time.Time `gorm:"index" json:"next_billing_date"`
	AutoRenew       bool       `gorm:"default:true" json:"auto_renew"`

	MaxBuildings *int                        `json:"max_buildings"`
	MaxUnits     *int                        `json:"max_units"`
	MaxUsers     *int                        `json:"max_users"`
	Features     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"features"`

	CancellationDate   *time.Time `json:"cancellation_date"`
	CancellationReason *string    `gorm:"size:500" json:"cancellation_reason"`
	Notes              string     `gorm:"size:1000" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// RevenueRecord maps the row into the snapshot shape the revenue aggregator
// consumes.
func (s *Subscription) RevenueRecord() billing.Record {
	return billing.Record{
		Status:          s.Status,
		Tier:            s.Tier,
		Cycle:           s.BillingCycle,
		Price:           s.Price,
		NextBillingDate: s.NextBillingDate,
		EndDate:         s.EndDate,
	}
}
