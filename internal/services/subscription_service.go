package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/estateops/backend/internal/billing"
	"github.com/estateops/backend/internal/dto"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionService owns creation, update, and cancellation of an
// organization's paid-plan record. Pricing and date derivation are delegated
// to the billing package; persistence goes through the injected repository.
//
// The service does not enforce one subscription per organization: an
// organization may hold several concurrent records (e.g. add-on plans).
// ListByOrganization orders newest-first, which is the documented selection
// rule for callers that want "the" subscription.
type SubscriptionService struct {
	repo    repository.SubscriptionRepository
	catalog *billing.Catalog
	clock   billing.Clock
}

func NewSubscriptionService(repo repository.SubscriptionRepository, catalog *billing.Catalog, clock billing.Clock) *SubscriptionService {
	return &SubscriptionService{repo: repo, catalog: catalog, clock: clock}
}

// CreateSubscription assigns a plan to an organization. Base price, features,
// and limits default from the plan catalog when not supplied; a missing
// catalog entry is an error, never a silent zero price. Initial status is
// trial when trialDays > 0, otherwise active.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	if req.OrganizationID == uuid.Nil {
		return nil, fmt.Errorf("%w: organization_id is required", billing.ErrInvalidInput)
	}
	tier, err := billing.ParseTier(req.Tier)
	if err != nil {
		return nil, err
	}
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}

	basePrice, err := s.resolveBasePrice(req.BasePrice, tier, cycle)
	if err != nil {
		return nil, err
	}

	discountType, discountValue, err := parseDiscount(req.DiscountType, req.DiscountValue)
	if err != nil {
		return nil, err
	}

	sub := models.Subscription{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Tier:           tier,
		BillingCycle:   cycle,
		BasePrice:      basePrice,
		Currency:       billing.DefaultCurrency,
		AutoRenew:      true,
		Notes:          req.Notes,
	}
	if req.AutoRenew != nil {
		sub.AutoRenew = *req.AutoRenew
	}

	if req.Price != nil {
		// Explicit override: stored verbatim, base/discount kept as provided.
		sub.Price = decimal.NewFromFloat(*req.Price).Round(2)
		sub.DiscountType = discountType
		sub.DiscountValue = toNullDecimal(discountValue)
	} else {
		result, err := billing.ComputePrice(basePrice, discountType, discountValue)
		if err != nil {
			return nil, err
		}
		sub.Price = result.FinalPrice
		sub.DiscountType = result.DiscountType
		sub.DiscountValue = toNullDecimal(result.DiscountValue)
	}

	start := s.clock.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	sub.StartDate = start

	dates, err := billing.DeriveBillingDates(start, cycle, req.TrialDays)
	if err != nil {
		return nil, err
	}
	sub.EndDate = &dates.EndDate
	sub.NextBillingDate = &dates.NextBillingDate
	sub.TrialEndDate = dates.TrialEndDate

	if req.TrialDays > 0 {
		sub.Status = billing.StatusTrial
	} else {
		sub.Status = billing.StatusActive
	}

	if err := s.applyPlanDefaults(&sub, tier, req.Features, req.MaxBuildings, req.MaxUnits, req.MaxUsers); err != nil {
		return nil, err
	}

	sub.CreatedAt = s.clock.Now()
	sub.UpdatedAt = sub.CreatedAt

	if err := s.repo.Insert(ctx, &sub); err != nil {
		return nil, err
	}

	slog.Info("subscription created",
		"org_id", sub.OrganizationID.String(),
		"subscription_id", sub.ID.String(),
		"tier", string(sub.Tier),
		"cycle", string(sub.BillingCycle),
		"status", string(sub.Status))
	return &sub, nil
}

// UpdateSubscription applies a partial patch. A patch with no recognized
// fields is a no-op that still returns the unchanged record.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, id uuid.UUID, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	if emptyPatch(req) {
		// Idempotent read-back: an empty patch succeeds without writing.
		return sub, nil
	}

	tierChanged := false
	if req.Tier != nil {
		tier, err := billing.ParseTier(*req.Tier)
		if err != nil {
			return nil, err
		}
		tierChanged = tier != sub.Tier
		sub.Tier = tier
	}

	cycleChanged := false
	if req.BillingCycle != nil {
		cycle, err := billing.ParseCycle(*req.BillingCycle)
		if err != nil {
			return nil, err
		}
		cycleChanged = cycle != sub.BillingCycle
		sub.BillingCycle = cycle
	}

	startChanged := false
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
		startChanged = true
	}

	// Tier change re-resolves features from the new tier unless features were
	// explicitly supplied, and re-derives the base price from the catalog when
	// no explicit base price or price override came with the patch.
	if tierChanged {
		if req.Features == nil {
			features, err := s.catalog.Features(sub.Tier)
			if err != nil {
				return nil, err
			}
			sub.Features = features
		}
		if req.BasePrice == nil && req.Price == nil {
			basePrice, err := s.catalog.BasePrice(sub.Tier, sub.BillingCycle)
			if err != nil {
				return nil, err
			}
			sub.BasePrice = basePrice
		}
	}

	// Cycle or start-date changes re-derive the billing dates from the
	// (possibly new) start date. Elapsed time on the previous cycle is not
	// credited; there is no proration. Updates never create a trial.
	if cycleChanged || startChanged {
		dates, err := billing.DeriveBillingDates(sub.StartDate, sub.BillingCycle, 0)
		if err != nil {
			return nil, err
		}
		sub.EndDate = &dates.EndDate
		sub.NextBillingDate = &dates.NextBillingDate
	}
	if req.EndDate != nil {
		end := *req.EndDate
		sub.EndDate = &end
	}

	discountSupplied := req.DiscountType != nil || req.DiscountValue != nil
	if req.BasePrice != nil {
		sub.BasePrice = decimal.NewFromFloat(*req.BasePrice)
	}

	if req.Price != nil {
		// Override is authoritative; base/discount updated only when supplied.
		sub.Price = decimal.NewFromFloat(*req.Price).Round(2)
		if discountSupplied {
			discountType, discountValue, err := parseDiscount(req.DiscountType, req.DiscountValue)
			if err != nil {
				return nil, err
			}
			sub.DiscountType = discountType
			sub.DiscountValue = toNullDecimal(discountValue)
		}
	} else if req.BasePrice != nil || discountSupplied || tierChanged {
		discountType := sub.DiscountType
		discountValue := fromNullDecimal(sub.DiscountValue)
		if discountSupplied {
			discountType, discountValue, err = parseDiscount(req.DiscountType, req.DiscountValue)
			if err != nil {
				return nil, err
			}
		}
		result, err := billing.ComputePrice(sub.BasePrice, discountType, discountValue)
		if err != nil {
			return nil, err
		}
		sub.Price = result.FinalPrice
		sub.DiscountType = result.DiscountType
		sub.DiscountValue = toNullDecimal(result.DiscountValue)
	}

	if req.Status != nil {
		status, err := billing.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		sub.Status = status
	}
	if req.AutoRenew != nil {
		sub.AutoRenew = *req.AutoRenew
	}
	if req.MaxBuildings != nil {
		sub.MaxBuildings = req.MaxBuildings
	}
	if req.MaxUnits != nil {
		sub.MaxUnits = req.MaxUnits
	}
	if req.MaxUsers != nil {
		sub.MaxUsers = req.MaxUsers
	}
	if req.Features != nil {
		sub.Features = req.Features
	}
	if req.CancellationReason != nil {
		sub.CancellationReason = req.CancellationReason
	}
	if req.Notes != nil {
		sub.Notes = *req.Notes
	}

	sub.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// CancelSubscription marks the subscription cancelled and disables renewal.
// Cancelling twice is idempotent: the same fields are re-applied, so the
// cancellation date reflects the most recent call.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, id uuid.UUID, reason string) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	sub.Status = billing.StatusCancelled
	sub.CancellationDate = &now
	sub.AutoRenew = false
	if reason != "" {
		sub.CancellationReason = &reason
	}
	sub.UpdatedAt = now

	if err := s.repo.Update(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	slog.Info("subscription cancelled",
		"org_id", sub.OrganizationID.String(),
		"subscription_id", sub.ID.String(),
		"reason", reason)
	return sub, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// ListByOrganization returns the organization's subscriptions newest-first.
func (s *SubscriptionService) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Subscription, error) {
	return s.repo.FindByOrganization(ctx, orgID)
}

// RevenueStats aggregates MRR/ARR and distributions over the full current
// snapshot of subscriptions.
func (s *SubscriptionService) RevenueStats(ctx context.Context) (billing.RevenueStats, error) {
	subs, err := s.repo.FindAll(ctx)
	if err != nil {
		return billing.RevenueStats{}, err
	}

	records := make([]billing.Record, len(subs))
	for i := range subs {
		records[i] = subs[i].RevenueRecord()
	}
	return billing.AggregateRevenue(records, s.clock.Now()), nil
}

// Quote previews the final price for a tier/cycle and optional discount
// without creating anything.
func (s *SubscriptionService) Quote(req *dto.QuoteRequest) (billing.PriceResult, error) {
	tier, err := billing.ParseTier(req.Tier)
	if err != nil {
		return billing.PriceResult{}, err
	}
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return billing.PriceResult{}, err
	}

	basePrice, err := s.resolveBasePrice(req.BasePrice, tier, cycle)
	if err != nil {
		return billing.PriceResult{}, err
	}
	discountType, discountValue, err := parseDiscount(req.DiscountType, req.DiscountValue)
	if err != nil {
		return billing.PriceResult{}, err
	}
	return billing.ComputePrice(basePrice, discountType, discountValue)
}

func (s *SubscriptionService) resolveBasePrice(override *float64, tier billing.Tier, cycle billing.Cycle) (decimal.Decimal, error) {
	if override != nil {
		base := decimal.NewFromFloat(*override)
		if base.IsNegative() {
			return decimal.Zero, billing.ErrNegativeBasePrice
		}
		return base, nil
	}
	return s.catalog.BasePrice(tier, cycle)
}

func (s *SubscriptionService) applyPlanDefaults(sub *models.Subscription, tier billing.Tier, features []string, maxBuildings, maxUnits, maxUsers *int) error {
	if features != nil {
		sub.Features = features
	} else {
		defaults, err := s.catalog.Features(tier)
		if err != nil {
			return err
		}
		sub.Features = defaults
	}

	limits, err := s.catalog.Limits(tier)
	if err != nil {
		return err
	}
	sub.MaxBuildings = limits.MaxBuildings
	sub.MaxUnits = limits.MaxUnits
	sub.MaxUsers = limits.MaxUsers
	if maxBuildings != nil {
		sub.MaxBuildings = maxBuildings
	}
	if maxUnits != nil {
		sub.MaxUnits = maxUnits
	}
	if maxUsers != nil {
		sub.MaxUsers = maxUsers
	}
	return nil
}

func emptyPatch(req *dto.UpdateSubscriptionRequest) bool {
	return req.Tier == nil && req.BillingCycle == nil &&
		req.StartDate == nil && req.EndDate == nil &&
		req.BasePrice == nil && req.DiscountType == nil && req.DiscountValue == nil &&
		req.Price == nil && req.Status == nil && req.AutoRenew == nil &&
		req.MaxBuildings == nil && req.MaxUnits == nil && req.MaxUsers == nil &&
		req.Features == nil && req.CancellationReason == nil && req.Notes == nil
}

func parseDiscount(rawType *string, rawValue *float64) (*billing.DiscountType, *decimal.Decimal, error) {
	if rawType == nil {
		if rawValue != nil && *rawValue != 0 {
			return nil, nil, fmt.Errorf("%w: discount_value supplied without discount_type", billing.ErrInvalidDiscount)
		}
		return nil, nil, nil
	}
	discountType, err := billing.ParseDiscountType(*rawType)
	if err != nil {
		return nil, nil, err
	}
	if rawValue == nil {
		return &discountType, nil, nil
	}
	value := decimal.NewFromFloat(*rawValue)
	return &discountType, &value, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
