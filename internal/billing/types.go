package billing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks malformed enum values supplied by callers. Parse
// failures wrap it so transports can map them to a client error.
var ErrInvalidInput = errors.New("invalid input")

// Tier is a named service plan.
type Tier string

const (
	TierStarter    Tier = "starter"
	TierGrowth     Tier = "growth"
	TierEnterprise Tier = "enterprise"
)

// AllTiers is the ordered list of available tiers.
var AllTiers = []Tier{TierStarter, TierGrowth, TierEnterprise}

func (t Tier) Valid() bool {
	switch t {
	case TierStarter, TierGrowth, TierEnterprise:
		return true
	}
	return false
}

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// AllStatuses is the ordered list of subscription statuses.
var AllStatuses = []Status{StatusTrial, StatusActive, StatusExpired, StatusCancelled, StatusSuspended}

func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired, StatusCancelled, StatusSuspended:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown subscription status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Cycle is the recurrence period for charges.
type Cycle string

const (
	CycleMonthly   Cycle = "monthly"
	CycleQuarterly Cycle = "quarterly"
	CycleAnnually  Cycle = "annually"
)

// AllCycles is the ordered list of billing cycles.
var AllCycles = []Cycle{CycleMonthly, CycleQuarterly, CycleAnnually}

func (c Cycle) Valid() bool {
	switch c {
	case CycleMonthly, CycleQuarterly, CycleAnnually:
		return true
	}
	return false
}

// Months returns the length of the cycle in calendar months.
func (c Cycle) Months() int {
	switch c {
	case CycleMonthly:
		return 1
	case CycleQuarterly:
		return 3
	case CycleAnnually:
		return 12
	}
	return 0
}

func ParseCycle(s string) (Cycle, error) {
	c := Cycle(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown billing cycle %q", ErrInvalidInput, s)
	}
	return c, nil
}

// DiscountType selects how a discount is applied to the base price.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	switch d {
	case DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

func ParseDiscountType(s string) (DiscountType, error) {
	d := DiscountType(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, s)
	}
	return d, nil
}

// DefaultCurrency is the currency code stamped on every subscription.
const DefaultCurrency = "USD"
