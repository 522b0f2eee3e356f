package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/repository"
)

// RunResult summarizes one pass of the billing runner.
type RunResult struct {
	TrialsConverted int `json:"trials_converted"`
	TrialsExpired   int `json:"trials_expired"`
	Renewed         int `json:"renewed"`
	Expired         int `json:"expired"`
	Invoiced        int `json:"invoiced"`
}

// BillingRunner applies time-based status transitions: trials end, renewing
// subscriptions roll into their next cycle, and non-renewing ones expire.
// Every paid period it opens gets an invoice record. It runs on a ticker
// and can also be triggered by an admin endpoint.
type BillingRunner struct {
	repo     repository.SubscriptionRepository
	invoices repository.InvoiceRepository
	clock    billing.Clock
}

func NewBillingRunner(repo repository.SubscriptionRepository, invoices repository.InvoiceRepository, clock billing.Clock) *BillingRunner {
	return &BillingRunner{repo: repo, invoices: invoices, clock: clock}
}

// Start launches the periodic run loop. Close done to stop it.
func (r *BillingRunner) Start(interval time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				result, err := r.RunOnce(context.Background())
				if err != nil {
					slog.Error("billing run failed", "error", err)
					continue
				}
				slog.Info("billing run completed",
					"trials_converted", result.TrialsConverted,
					"trials_expired", result.TrialsExpired,
					"renewed", result.Renewed,
					"expired", result.Expired)
			case <-done:
				return
			}
		}
	}()
}

// RunOnce walks the full snapshot once and persists every transition it
// makes. A failed update is logged and skipped; the run continues.
func (r *BillingRunner) RunOnce(ctx context.Context) (RunResult, error) {
	var result RunResult

	subs, err := r.repo.FindAll(ctx)
	if err != nil {
		return result, err
	}

	now := r.clock.Now()
	for i := range subs {
		sub := &subs[i]
		changed := false
		invoice := false

		switch sub.Status {
		case billing.StatusTrial:
			if sub.TrialEndDate != nil && !now.Before(*sub.TrialEndDate) {
				if sub.AutoRenew {
					sub.Status = billing.StatusActive
					result.TrialsConverted++
					invoice = true
				} else {
					sub.Status = billing.StatusExpired
					result.TrialsExpired++
				}
				changed = true
			}
		case billing.StatusActive:
			if sub.AutoRenew {
				if sub.NextBillingDate != nil && !now.Before(*sub.NextBillingDate) {
					// Roll into the next cycle anchored on the missed billing date.
					start := *sub.NextBillingDate
					dates, derr := billing.DeriveBillingDates(start, sub.BillingCycle, 0)
					if derr != nil {
						slog.Error("billing run skipped subscription", "subscription_id", sub.ID.String(), "error", derr)
						continue
					}
					sub.StartDate = start
					sub.EndDate = &dates.EndDate
					sub.NextBillingDate = &dates.NextBillingDate
					result.Renewed++
					invoice = true
					changed = true
				}
			} else if sub.EndDate != nil && !now.Before(*sub.EndDate) {
				sub.Status = billing.StatusExpired
				result.Expired++
				changed = true
			}
		}

		if !changed {
			continue
		}
		sub.UpdatedAt = now
		if err := r.repo.Update(ctx, sub); err != nil {
			slog.Error("billing run update failed", "subscription_id", sub.ID.String(), "error", err)
			continue
		}
		if invoice {
			if err := r.issueInvoice(ctx, sub, now); err != nil {
				slog.Error("billing run invoice failed", "subscription_id", sub.ID.String(), "error", err)
				continue
			}
			result.Invoiced++
		}
	}

	return result, nil
}

// issueInvoice records the charge for the paid period the transition just
// opened. The period runs from the subscription's start date to its end
// date; a missing end date falls back to one cycle from the start.
func (r *BillingRunner) issueInvoice(ctx context.Context, sub *models.Subscription, now time.Time) error {
	periodEnd := billing.AddCycle(sub.StartDate, sub.BillingCycle)
	if sub.EndDate != nil {
		periodEnd = *sub.EndDate
	}
	inv := models.NewInvoiceForPeriod(sub, sub.StartDate, periodEnd, now)
	return r.invoices.Insert(ctx, &inv)
}
