package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveBillingDates_Monthly(t *testing.T) {
	dates, err := DeriveBillingDates(day(2024, time.March, 10), CycleMonthly, 0)
	require.NoError(t, err)
	require.Equal(t, day(2024, time.April, 10), dates.EndDate)
	require.Equal(t, dates.EndDate, dates.NextBillingDate)
	require.Nil(t, dates.TrialEndDate)
}

func TestDeriveBillingDates_Quarterly(t *testing.T) {
	dates, err := DeriveBillingDates(day(2024, time.January, 15), CycleQuarterly, 0)
	require.NoError(t, err)
	require.Equal(t, day(2024, time.April, 15), dates.EndDate)
}

func TestDeriveBillingDates_Annually(t *testing.T) {
	dates, err := DeriveBillingDates(day(2024, time.January, 15), CycleAnnually, 0)
	require.NoError(t, err)
	require.Equal(t, day(2025, time.January, 15), dates.EndDate)
}

// Month-end arithmetic clamps to the last day of the target month instead of
// rolling into the following month.
func TestDeriveBillingDates_MonthEndClamp(t *testing.T) {
	dates, err := DeriveBillingDates(day(2024, time.January, 31), CycleMonthly, 0)
	require.NoError(t, err)
	require.Equal(t, day(2024, time.February, 29), dates.EndDate)

	dates, err = DeriveBillingDates(day(2023, time.January, 31), CycleMonthly, 0)
	require.NoError(t, err)
	require.Equal(t, day(2023, time.February, 28), dates.EndDate)

	dates, err = DeriveBillingDates(day(2024, time.November, 30), CycleQuarterly, 0)
	require.NoError(t, err)
	require.Equal(t, day(2025, time.February, 28), dates.EndDate)
}

func TestDeriveBillingDates_LeapDayAnnual(t *testing.T) {
	dates, err := DeriveBillingDates(day(2024, time.February, 29), CycleAnnually, 0)
	require.NoError(t, err)
	require.Equal(t, day(2025, time.February, 28), dates.EndDate)
}

func TestDeriveBillingDates_Trial(t *testing.T) {
	start := day(2024, time.June, 1)
	dates, err := DeriveBillingDates(start, CycleMonthly, 14)
	require.NoError(t, err)
	require.NotNil(t, dates.TrialEndDate)
	require.Equal(t, day(2024, time.June, 15), *dates.TrialEndDate)
	// Trial length never moves the cycle end.
	require.Equal(t, day(2024, time.July, 1), dates.EndDate)
}

func TestDeriveBillingDates_InvalidInput(t *testing.T) {
	_, err := DeriveBillingDates(day(2024, time.June, 1), Cycle("weekly"), 0)
	require.Error(t, err)

	_, err = DeriveBillingDates(day(2024, time.June, 1), CycleMonthly, -1)
	require.ErrorIs(t, err, ErrTrialLength)
}
