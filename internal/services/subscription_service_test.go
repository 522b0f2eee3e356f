package services

import (
	"context"
	"testing"
	"time"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/dto"
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

type fakeSubscriptionRepo struct {
	subs        map[uuid.UUID]models.Subscription
	updateCalls int
}

func newFakeRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]models.Subscription)}
}

func (r *fakeSubscriptionRepo) Insert(_ context.Context, sub *models.Subscription) error {
	r.subs[sub.ID] = *sub
	return nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return repository.ErrNotFound
	}
	r.updateCalls++
	r.subs[sub.ID] = *sub
	return nil
}

func (r *fakeSubscriptionRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sub, nil
}

func (r *fakeSubscriptionRepo) FindByOrganization(_ context.Context, orgID uuid.UUID) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range r.subs {
		if sub.OrganizationID == orgID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindAll(_ context.Context) ([]models.Subscription, error) {
	out := make([]models.Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out, nil
}

func testCatalog(t *testing.T) *billing.Catalog {
	t.Helper()
	five, fifty, ten := 5, 50, 10
	cat, err := billing.NewCatalog([]billing.PlanSpec{
		{
			Tier: billing.TierStarter,
			Prices: map[billing.Cycle]decimal.Decimal{
				billing.CycleMonthly:   decimal.NewFromInt(99),
				billing.CycleQuarterly: decimal.NewFromInt(270),
				billing.CycleAnnually:  decimal.NewFromInt(950),
			},
			Features: []string{"buildings", "leases", "workorders"},
			Limits:   billing.Limits{MaxBuildings: &five, MaxUnits: &fifty, MaxUsers: &ten},
		},
		{
			Tier: billing.TierGrowth,
			Prices: map[billing.Cycle]decimal.Decimal{
				billing.CycleMonthly:  decimal.NewFromInt(249),
				billing.CycleAnnually: decimal.NewFromInt(2400),
			},
			Features: []string{"buildings", "leases", "workorders", "complaints", "parking"},
		},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T) (*SubscriptionService, *fakeSubscriptionRepo, *fakeClock) {
	t.Helper()
	repo := newFakeRepo()
	clock := &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	return NewSubscriptionService(repo, testCatalog(t), clock), repo, clock
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestCreateSubscription_CatalogDefaults(t *testing.T) {
	svc, _, clock := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	require.Equal(t, billing.StatusActive, sub.Status)
	require.Equal(t, "99", sub.BasePrice.String())
	require.Equal(t, "99", sub.Price.String())
	require.Equal(t, "USD", sub.Currency)
	require.True(t, sub.AutoRenew)
	require.Equal(t, []string{"buildings", "leases", "workorders"}, []string(sub.Features))
	require.NotNil(t, sub.MaxBuildings)
	require.Equal(t, 5, *sub.MaxBuildings)

	require.Equal(t, clock.now, sub.StartDate)
	require.NotNil(t, sub.EndDate)
	require.Equal(t, clock.now.AddDate(0, 1, 0), *sub.EndDate)
	require.Equal(t, *sub.EndDate, *sub.NextBillingDate)
	require.Nil(t, sub.TrialEndDate)
}

func TestCreateSubscription_Trial(t *testing.T) {
	svc, _, clock := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		TrialDays:      14,
	})
	require.NoError(t, err)

	require.Equal(t, billing.StatusTrial, sub.Status)
	require.NotNil(t, sub.TrialEndDate)
	require.Equal(t, clock.now.AddDate(0, 0, 14), *sub.TrialEndDate)
}

func TestCreateSubscription_PercentageDiscount(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		BasePrice:      f64Ptr(1000),
		DiscountType:   strPtr("percentage"),
		DiscountValue:  f64Ptr(7),
	})
	require.NoError(t, err)
	require.Equal(t, "930", sub.Price.String())
	require.Equal(t, billing.DiscountPercentage, *sub.DiscountType)
}

func TestCreateSubscription_ExplicitPriceOverride(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		Price:          f64Ptr(42.50),
	})
	require.NoError(t, err)
	// Override wins; base price stays at the catalog value, not recomputed.
	require.Equal(t, "42.5", sub.Price.String())
	require.Equal(t, "99", sub.BasePrice.String())
}

func TestCreateSubscription_MissingCatalogEntryFailsClosed(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "growth",
		BillingCycle:   "quarterly",
	})
	require.ErrorIs(t, err, billing.ErrPlanNotConfigured)
}

func TestCreateSubscription_RejectsUnknownTier(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "platinum",
		BillingCycle:   "monthly",
	})
	require.Error(t, err)
}

func TestCreateSubscription_RejectsOversizedPercentage(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		DiscountType:   strPtr("percentage"),
		DiscountValue:  f64Ptr(150),
	})
	require.ErrorIs(t, err, billing.ErrInvalidDiscount)
}

func TestUpdateSubscription_EmptyPatchIsNoOp(t *testing.T) {
	svc, repo, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{})
	require.NoError(t, err)
	require.Equal(t, sub.Price.String(), updated.Price.String())
	require.Equal(t, sub.UpdatedAt, updated.UpdatedAt)
	require.Zero(t, repo.updateCalls)
}

func TestUpdateSubscription_TierChangeRederivesFeaturesAndPrice(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		DiscountType:   strPtr("percentage"),
		DiscountValue:  f64Ptr(10),
	})
	require.NoError(t, err)
	require.Equal(t, "89.1", sub.Price.String())

	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		Tier: strPtr("growth"),
	})
	require.NoError(t, err)

	// Base price from the growth/monthly table entry, discount preserved.
	require.Equal(t, "249", updated.BasePrice.String())
	require.Equal(t, "224.1", updated.Price.String())
	require.Equal(t, billing.DiscountPercentage, *updated.DiscountType)
	require.Equal(t, []string{"buildings", "leases", "workorders", "complaints", "parking"}, []string(updated.Features))
}

func TestUpdateSubscription_ExplicitFeaturesSurviveTierChange(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		Tier:     strPtr("growth"),
		Features: []string{"buildings"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"buildings"}, []string(updated.Features))
}

func TestUpdateSubscription_CycleChangeRederivesDates(t *testing.T) {
	svc, _, clock := newTestService(t)

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		StartDate:      &start,
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *sub.EndDate)

	clock.now = clock.now.Add(48 * time.Hour)
	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		BillingCycle: strPtr("quarterly"),
	})
	require.NoError(t, err)

	// Re-derived from the original start date; elapsed time is not credited.
	require.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), *updated.EndDate)
	require.Equal(t, *updated.EndDate, *updated.NextBillingDate)
	// Cycle change alone leaves the price untouched.
	require.Equal(t, "99", updated.BasePrice.String())
}

func TestUpdateSubscription_PriceOverrideStoredVerbatim(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		DiscountType:   strPtr("fixed"),
		DiscountValue:  f64Ptr(9),
	})
	require.NoError(t, err)
	require.Equal(t, "90", sub.Price.String())

	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		Price: f64Ptr(75),
	})
	require.NoError(t, err)
	require.Equal(t, "75", updated.Price.String())
	// Discount fields untouched when not supplied alongside the override.
	require.Equal(t, billing.DiscountFixed, *updated.DiscountType)
}

func TestUpdateSubscription_DiscountChangeRecomputesPrice(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
		BasePrice:      f64Ptr(200),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		DiscountType:  strPtr("fixed"),
		DiscountValue: f64Ptr(300),
	})
	require.NoError(t, err)
	// Fixed discounts floor at zero.
	require.True(t, updated.Price.IsZero())
}

func TestUpdateSubscription_PassThroughFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	three := 3
	updated, err := svc.UpdateSubscription(context.Background(), sub.ID, &dto.UpdateSubscriptionRequest{
		Status:       strPtr("suspended"),
		AutoRenew:    boolPtr(false),
		MaxBuildings: &three,
		Notes:        strPtr("payment dispute under review"),
	})
	require.NoError(t, err)
	require.Equal(t, billing.StatusSuspended, updated.Status)
	require.False(t, updated.AutoRenew)
	require.Equal(t, 3, *updated.MaxBuildings)
	require.Equal(t, "payment dispute under review", updated.Notes)
}

func TestUpdateSubscription_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateSubscription(context.Background(), uuid.New(), &dto.UpdateSubscriptionRequest{
		AutoRenew: boolPtr(false),
	})
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestCancelSubscription(t *testing.T) {
	svc, _, clock := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelSubscription(context.Background(), sub.ID, "moving to competitor")
	require.NoError(t, err)
	require.Equal(t, billing.StatusCancelled, cancelled.Status)
	require.False(t, cancelled.AutoRenew)
	require.NotNil(t, cancelled.CancellationDate)
	require.Equal(t, clock.now, *cancelled.CancellationDate)
	require.Equal(t, "moving to competitor", *cancelled.CancellationReason)
}

func TestCancelSubscription_Idempotent(t *testing.T) {
	svc, _, clock := newTestService(t)

	sub, err := svc.CreateSubscription(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationID: uuid.New(),
		Tier:           "starter",
		BillingCycle:   "monthly",
	})
	require.NoError(t, err)

	first, err := svc.CancelSubscription(context.Background(), sub.ID, "too expensive")
	require.NoError(t, err)

	clock.now = clock.now.Add(24 * time.Hour)
	second, err := svc.CancelSubscription(context.Background(), sub.ID, "too expensive")
	require.NoError(t, err)

	// Re-applies the same fields; the cancellation date reflects the latest call.
	require.Equal(t, first.Status, second.Status)
	require.Equal(t, clock.now, *second.CancellationDate)
}

func TestCancelSubscription_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CancelSubscription(context.Background(), uuid.New(), "")
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestRevenueStats(t *testing.T) {
	svc, _, _ := newTestService(t)
	orgID := uuid.New()

	start := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	for _, req := range []*dto.CreateSubscriptionRequest{
		{OrganizationID: orgID, Tier: "starter", BillingCycle: "monthly", Price: f64Ptr(1000), StartDate: &start},
		{OrganizationID: orgID, Tier: "starter", BillingCycle: "quarterly", Price: f64Ptr(3000), StartDate: &start},
		{OrganizationID: orgID, Tier: "growth", BillingCycle: "annually", Price: f64Ptr(12000), StartDate: &start},
	} {
		_, err := svc.CreateSubscription(context.Background(), req)
		require.NoError(t, err)
	}

	stats, err := svc.RevenueStats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3000, stats.MRR)
	require.EqualValues(t, 36000, stats.ARR)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 3, stats.StatusCounts[billing.StatusActive])
	require.Equal(t, 2, stats.TierStats[billing.TierStarter].Count)
	// Only the monthly subscription renews within the 30-day window.
	require.Equal(t, 1, stats.UpcomingRenewals)
	require.Equal(t, 1, stats.ExpiringSoon)
}

func TestQuote(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.Quote(&dto.QuoteRequest{
		Tier:          "starter",
		BillingCycle:  "annually",
		DiscountType:  strPtr("percentage"),
		DiscountValue: f64Ptr(50),
	})
	require.NoError(t, err)
	require.Equal(t, "475", res.FinalPrice.String())
}
