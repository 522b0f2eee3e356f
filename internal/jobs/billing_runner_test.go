package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeRepo struct {
	subs map[uuid.UUID]models.Subscription
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: make(map[uuid.UUID]models.Subscription)}
}

func (r *fakeRepo) Insert(_ context.Context, sub *models.Subscription) error {
	r.subs[sub.ID] = *sub
	return nil
}

func (r *fakeRepo) Update(_ context.Context, sub *models.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return repository.ErrNotFound
	}
	r.subs[sub.ID] = *sub
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sub, nil
}

func (r *fakeRepo) FindByOrganization(_ context.Context, orgID uuid.UUID) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.OrganizationID == orgID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]models.Subscription, error) {
	out := make([]models.Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices []models.Invoice
}

func (r *fakeInvoiceRepo) Insert(_ context.Context, inv *models.Invoice) error {
	r.invoices = append(r.invoices, *inv)
	return nil
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Invoice, error) {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			return &r.invoices[i], nil
		}
	}
	return nil, repository.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) FindByOrganization(_ context.Context, orgID uuid.UUID) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.OrganizationID == orgID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context) ([]models.Invoice, error) {
	return r.invoices, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			r.invoices[i].Status = status
			return nil
		}
	}
	return repository.ErrInvoiceNotFound
}

func seed(repo *fakeRepo, sub models.Subscription) uuid.UUID {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.OrganizationID = uuid.New()
	sub.Price = decimal.NewFromInt(99)
	repo.subs[sub.ID] = sub
	return sub.ID
}

func ts(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRunOnce_TrialConversion(t *testing.T) {
	repo := newFakeRepo()
	invoices := &fakeInvoiceRepo{}
	clock := &fakeClock{now: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}
	runner := NewBillingRunner(repo, invoices, clock)

	converts := seed(repo, models.Subscription{
		Status: billing.StatusTrial, BillingCycle: billing.CycleMonthly,
		AutoRenew: true, TrialEndDate: ts(2024, time.May, 30),
		StartDate: time.Date(2024, time.May, 16, 0, 0, 0, 0, time.UTC),
	})
	expires := seed(repo, models.Subscription{
		Status: billing.StatusTrial, BillingCycle: billing.CycleMonthly,
		AutoRenew: false, TrialEndDate: ts(2024, time.May, 30),
	})
	stillRunning := seed(repo, models.Subscription{
		Status: billing.StatusTrial, BillingCycle: billing.CycleMonthly,
		AutoRenew: true, TrialEndDate: ts(2024, time.June, 10),
	})

	result, err := runner.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.TrialsConverted)
	require.Equal(t, 1, result.TrialsExpired)
	require.Equal(t, 1, result.Invoiced)

	require.Equal(t, billing.StatusActive, repo.subs[converts].Status)
	require.Equal(t, billing.StatusExpired, repo.subs[expires].Status)
	require.Equal(t, billing.StatusTrial, repo.subs[stillRunning].Status)

	// Only the converted trial opened a paid period.
	require.Len(t, invoices.invoices, 1)
	inv := invoices.invoices[0]
	require.Equal(t, repo.subs[converts].OrganizationID, inv.OrganizationID)
	require.Equal(t, converts, inv.SubscriptionID)
	require.Equal(t, models.InvoiceStatusIssued, inv.Status)
	require.True(t, inv.Amount.Equal(decimal.NewFromInt(99)))
}

func TestRunOnce_RenewalAdvancesCycle(t *testing.T) {
	repo := newFakeRepo()
	invoices := &fakeInvoiceRepo{}
	clock := &fakeClock{now: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)}
	runner := NewBillingRunner(repo, invoices, clock)

	id := seed(repo, models.Subscription{
		Status: billing.StatusActive, BillingCycle: billing.CycleMonthly,
		AutoRenew:       true,
		StartDate:       time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         ts(2024, time.June, 1),
		NextBillingDate: ts(2024, time.June, 1),
	})

	result, err := runner.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Renewed)

	renewed := repo.subs[id]
	require.Equal(t, billing.StatusActive, renewed.Status)
	// New cycle anchored on the missed billing date, not on "now".
	require.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), renewed.StartDate)
	require.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), *renewed.EndDate)
	require.Equal(t, *renewed.EndDate, *renewed.NextBillingDate)

	// The renewal invoice covers the new cycle.
	require.Len(t, invoices.invoices, 1)
	inv := invoices.invoices[0]
	require.Equal(t, id, inv.SubscriptionID)
	require.Equal(t, renewed.StartDate, inv.PeriodStart)
	require.Equal(t, *renewed.EndDate, inv.PeriodEnd)
	require.Contains(t, inv.Number, "INV-202406-")
}

func TestRunOnce_NonRenewingExpires(t *testing.T) {
	repo := newFakeRepo()
	invoices := &fakeInvoiceRepo{}
	clock := &fakeClock{now: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)}
	runner := NewBillingRunner(repo, invoices, clock)

	id := seed(repo, models.Subscription{
		Status: billing.StatusActive, BillingCycle: billing.CycleMonthly,
		AutoRenew: false,
		EndDate:   ts(2024, time.June, 1),
	})

	result, err := runner.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Expired)
	require.Equal(t, billing.StatusExpired, repo.subs[id].Status)
	require.Empty(t, invoices.invoices)
}

func TestRunOnce_LeavesSettledStatusesAlone(t *testing.T) {
	repo := newFakeRepo()
	clock := &fakeClock{now: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)}
	runner := NewBillingRunner(repo, &fakeInvoiceRepo{}, clock)

	cancelled := seed(repo, models.Subscription{
		Status: billing.StatusCancelled, BillingCycle: billing.CycleMonthly,
		EndDate: ts(2024, time.May, 1),
	})
	suspended := seed(repo, models.Subscription{
		Status: billing.StatusSuspended, BillingCycle: billing.CycleMonthly,
		NextBillingDate: ts(2024, time.May, 1),
	})

	result, err := runner.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunResult{}, result)
	require.Equal(t, billing.StatusCancelled, repo.subs[cancelled].Status)
	require.Equal(t, billing.StatusSuspended, repo.subs[suspended].Status)
}
