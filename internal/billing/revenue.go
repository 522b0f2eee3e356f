package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// renewalWindow is the forward-looking window for renewal/expiry counts.
const renewalWindow = 30 * 24 * time.Hour

var (
	three  = decimal.NewFromInt(3)
	twelve = decimal.NewFromInt(12)
)

// Record is the snapshot view of a subscription consumed by the revenue
// aggregator. The lifecycle service maps persisted rows into this shape.
type Record struct {
	Status          Status
	Tier            Tier
	Cycle           Cycle
	Price           decimal.Decimal
	NextBillingDate *time.Time
	EndDate         *time.Time
}

// TierStat is the per-tier slice of the revenue distribution.
type TierStat struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueStats is the aggregate view consumed by the analytics screens.
// Everything is recomputed from the full snapshot on each call; there is no
// incremental update path.
type RevenueStats struct {
	MRR              int64             `json:"mrr"`
	ARR              int64             `json:"arr"`
	Total            int               `json:"total"`
	StatusCounts     map[Status]int    `json:"status_counts"`
	TierStats        map[Tier]TierStat `json:"tier_stats"`
	CycleCounts      map[Cycle]int     `json:"cycle_counts"`
	UpcomingRenewals int               `json:"upcoming_renewals"`
	ExpiringSoon     int               `json:"expiring_soon"`
	Skipped          int               `json:"skipped"`
}

// AggregateRevenue computes MRR/ARR and distribution counts over a snapshot
// of subscription records.
//
// MRR normalizes each active/trial subscription to a monthly amount: monthly
// price as-is, quarterly divided by three, annual divided by twelve; the sum
// is rounded to a whole amount for display, and ARR is MRR times twelve.
// Renewal and expiry counts cover [now, now+30d): a date already in the past
// is past due, not upcoming. Records with unknown status, tier, or cycle are
// skipped and counted rather than failing the whole aggregate.
func AggregateRevenue(records []Record, now time.Time) RevenueStats {
	stats := RevenueStats{
		StatusCounts: make(map[Status]int),
		TierStats:    make(map[Tier]TierStat),
		CycleCounts:  make(map[Cycle]int),
	}

	windowEnd := now.Add(renewalWindow)
	mrr := decimal.Zero

	for _, r := range records {
		if !r.Status.Valid() || !r.Tier.Valid() || !r.Cycle.Valid() {
			stats.Skipped++
			continue
		}

		stats.Total++
		stats.StatusCounts[r.Status]++
		stats.CycleCounts[r.Cycle]++

		ts := stats.TierStats[r.Tier]
		ts.Count++
		ts.Revenue = ts.Revenue.Add(r.Price)
		stats.TierStats[r.Tier] = ts

		if r.Status == StatusActive || r.Status == StatusTrial {
			mrr = mrr.Add(monthlyNormalized(r.Price, r.Cycle))
		}

		if r.NextBillingDate != nil && inWindow(*r.NextBillingDate, now, windowEnd) {
			stats.UpcomingRenewals++
		}
		if r.EndDate != nil && inWindow(*r.EndDate, now, windowEnd) {
			stats.ExpiringSoon++
		}
	}

	stats.MRR = mrr.Round(0).IntPart()
	stats.ARR = stats.MRR * 12
	return stats
}

func monthlyNormalized(price decimal.Decimal, cycle Cycle) decimal.Decimal {
	switch cycle {
	case CycleQuarterly:
		return price.Div(three)
	case CycleAnnually:
		return price.Div(twelve)
	}
	return price
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
