package billing

import (
	"errors"
	"fmt"
	"time"
)

var ErrTrialLength = errors.New("trial length must not be negative")

// BillingDates holds the dates derived from a subscription's start date and
// billing cycle. NextBillingDate equals EndDate when first derived.
type BillingDates struct {
	EndDate         time.Time
	NextBillingDate time.Time
	TrialEndDate    *time.Time
}

// DeriveBillingDates advances startDate by exactly one cycle unit using
// calendar addition. Month arithmetic clamps to the last day of the target
// month (Jan 31 + 1 month = Feb 29 in a leap year), so the billing anchor
// day never rolls into the following month.
//
// A trialDays > 0 sets TrialEndDate to startDate + trialDays; the trial
// length is independent of the cycle and does not move EndDate.
func DeriveBillingDates(startDate time.Time, cycle Cycle, trialDays int) (BillingDates, error) {
	if !cycle.Valid() {
		return BillingDates{}, fmt.Errorf("%w: unknown billing cycle %q", ErrInvalidInput, cycle)
	}
	if trialDays < 0 {
		return BillingDates{}, ErrTrialLength
	}

	end := AddCycle(startDate, cycle)
	dates := BillingDates{
		EndDate:         end,
		NextBillingDate: end,
	}

	if trialDays > 0 {
		trialEnd := startDate.AddDate(0, 0, trialDays)
		dates.TrialEndDate = &trialEnd
	}
	return dates, nil
}

// AddCycle advances t by one billing-cycle unit with month-end clamping.
func AddCycle(t time.Time, cycle Cycle) time.Time {
	return addMonthsClamped(t, cycle.Months())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	// First of the target month; time.Date normalizes month overflow.
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
