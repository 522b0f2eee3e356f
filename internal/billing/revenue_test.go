package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestAggregateRevenue_MRRNormalization(t *testing.T) {
	now := day(2024, time.June, 1)
	records := []Record{
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(1000)},
		{Status: StatusActive, Tier: TierGrowth, Cycle: CycleQuarterly, Price: decimal.NewFromInt(3000)},
		{Status: StatusActive, Tier: TierEnterprise, Cycle: CycleAnnually, Price: decimal.NewFromInt(12000)},
	}

	stats := AggregateRevenue(records, now)
	require.EqualValues(t, 3000, stats.MRR)
	require.EqualValues(t, 36000, stats.ARR)
}

func TestAggregateRevenue_TrialCountsTowardMRR(t *testing.T) {
	now := day(2024, time.June, 1)
	records := []Record{
		{Status: StatusTrial, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(99)},
		{Status: StatusCancelled, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(99)},
		{Status: StatusExpired, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(99)},
		{Status: StatusSuspended, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(99)},
	}

	stats := AggregateRevenue(records, now)
	require.EqualValues(t, 99, stats.MRR)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.StatusCounts[StatusTrial])
	require.Equal(t, 1, stats.StatusCounts[StatusCancelled])
}

func TestAggregateRevenue_Distributions(t *testing.T) {
	now := day(2024, time.June, 1)
	records := []Record{
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100)},
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleAnnually, Price: decimal.NewFromInt(1100)},
		{Status: StatusActive, Tier: TierGrowth, Cycle: CycleMonthly, Price: decimal.NewFromInt(250)},
	}

	stats := AggregateRevenue(records, now)
	require.Equal(t, 2, stats.TierStats[TierStarter].Count)
	require.Equal(t, "1200", stats.TierStats[TierStarter].Revenue.String())
	require.Equal(t, 1, stats.TierStats[TierGrowth].Count)
	require.Equal(t, 2, stats.CycleCounts[CycleMonthly])
	require.Equal(t, 1, stats.CycleCounts[CycleAnnually])
}

func TestAggregateRevenue_RenewalWindow(t *testing.T) {
	now := day(2024, time.June, 1)
	records := []Record{
		// Inside the window.
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100),
			NextBillingDate: ptrTime(day(2024, time.June, 15))},
		// Past due: excluded.
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100),
			NextBillingDate: ptrTime(day(2024, time.May, 20))},
		// Beyond 30 days: excluded.
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100),
			NextBillingDate: ptrTime(day(2024, time.July, 15))},
		// Expiring soon.
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100),
			EndDate: ptrTime(day(2024, time.June, 20))},
	}

	stats := AggregateRevenue(records, now)
	require.Equal(t, 1, stats.UpcomingRenewals)
	require.Equal(t, 1, stats.ExpiringSoon)
}

func TestAggregateRevenue_SkipsMalformedRecords(t *testing.T) {
	now := day(2024, time.June, 1)
	records := []Record{
		{Status: StatusActive, Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100)},
		{Status: Status("unknown"), Tier: TierStarter, Cycle: CycleMonthly, Price: decimal.NewFromInt(100)},
		{Status: StatusActive, Tier: Tier("platinum"), Cycle: CycleMonthly, Price: decimal.NewFromInt(100)},
	}

	stats := AggregateRevenue(records, now)
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 2, stats.Skipped)
	require.EqualValues(t, 100, stats.MRR)
}

func TestAggregateRevenue_Empty(t *testing.T) {
	stats := AggregateRevenue(nil, day(2024, time.June, 1))
	require.Zero(t, stats.MRR)
	require.Zero(t, stats.ARR)
	require.Zero(t, stats.Total)
}
