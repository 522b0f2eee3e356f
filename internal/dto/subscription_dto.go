package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateSubscriptionRequest assigns a plan to an organization. BasePrice,
// Features, and limits default from the plan catalog when omitted. Price is
// an explicit override that bypasses discount derivation.
type CreateSubscriptionRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Tier           string    `json:"tier"`
	BillingCycle   string    `json:"billing_cycle"`

	BasePrice     *float64 `json:"base_price,omitempty"`
	DiscountType  *string  `json:"discount_type,omitempty"`
	DiscountValue *float64 `json:"discount_value,omitempty"`
	Price         *float64 `json:"price,omitempty"`

	TrialDays int        `json:"trial_days,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	AutoRenew *bool      `json:"auto_renew,omitempty"`

	MaxBuildings *int     `json:"max_buildings,omitempty"`
	MaxUnits     *int     `json:"max_units,omitempty"`
	MaxUsers     *int     `json:"max_users,omitempty"`
	Features     []string `json:"features,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// UpdateSubscriptionRequest is a partial patch; nil fields are left alone.
// An empty patch is a no-op that still succeeds.
type UpdateSubscriptionRequest struct {
	Tier         *string `json:"tier,omitempty"`
	BillingCycle *string `json:"billing_cycle,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	BasePrice     *float64 `json:"base_price,omitempty"`
	DiscountType  *string  `json:"discount_type,omitempty"`
	DiscountValue *float64 `json:"discount_value,omitempty"`
	Price         *float64 `json:"price,omitempty"`

	Status    *string `json:"status,omitempty"`
	AutoRenew *bool   `json:"auto_renew,omitempty"`

	MaxBuildings *int     `json:"max_buildings,omitempty"`
	MaxUnits     *int     `json:"max_units,omitempty"`
	MaxUsers     *int     `json:"max_users,omitempty"`
	Features     []string `json:"features,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// QuoteRequest previews a price without touching any subscription.
type QuoteRequest struct {
	Tier          string   `json:"tier"`
	BillingCycle  string   `json:"billing_cycle"`
	BasePrice     *float64 `json:"base_price,omitempty"`
	DiscountType  *string  `json:"discount_type,omitempty"`
	DiscountValue *float64 `json:"discount_value,omitempty"`
}
