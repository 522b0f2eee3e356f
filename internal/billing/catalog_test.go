package billing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	five := 5
	cat, err := NewCatalog([]PlanSpec{
		{
			Tier: TierStarter,
			Prices: map[Cycle]decimal.Decimal{
				CycleMonthly:  decimal.NewFromInt(99),
				CycleAnnually: decimal.NewFromInt(990),
			},
			Features: []string{"buildings", "leases"},
			Limits:   Limits{MaxBuildings: &five},
		},
		{
			Tier: TierGrowth,
			Prices: map[Cycle]decimal.Decimal{
				CycleMonthly: decimal.NewFromInt(249),
			},
			Features: []string{"buildings", "leases", "workorders"},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestCatalog_BasePrice(t *testing.T) {
	cat := fixtureCatalog(t)

	price, err := cat.BasePrice(TierStarter, CycleAnnually)
	require.NoError(t, err)
	require.Equal(t, "990", price.String())
}

func TestCatalog_MissingEntryFailsClosed(t *testing.T) {
	cat := fixtureCatalog(t)

	_, err := cat.BasePrice(TierStarter, CycleQuarterly)
	require.ErrorIs(t, err, ErrPlanNotConfigured)

	_, err = cat.BasePrice(TierEnterprise, CycleMonthly)
	require.ErrorIs(t, err, ErrPlanNotConfigured)

	_, err = cat.Features(TierEnterprise)
	require.ErrorIs(t, err, ErrPlanNotConfigured)
}

func TestCatalog_FeaturesCopied(t *testing.T) {
	cat := fixtureCatalog(t)

	features, err := cat.Features(TierStarter)
	require.NoError(t, err)
	require.Equal(t, []string{"buildings", "leases"}, features)

	features[0] = "mutated"
	again, err := cat.Features(TierStarter)
	require.NoError(t, err)
	require.Equal(t, "buildings", again[0])
}

func TestNewCatalog_RejectsUnknownTier(t *testing.T) {
	_, err := NewCatalog([]PlanSpec{{Tier: Tier("platinum")}})
	require.Error(t, err)
}

func TestNewCatalog_RejectsDuplicateTier(t *testing.T) {
	_, err := NewCatalog([]PlanSpec{{Tier: TierStarter}, {Tier: TierStarter}})
	require.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.json")
	payload := `{"plans":[{"tier":"starter","prices":{"monthly":"99","quarterly":"270"},"features":["buildings"],"limits":{"max_buildings":5}}]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)

	price, err := cat.BasePrice(TierStarter, CycleQuarterly)
	require.NoError(t, err)
	require.Equal(t, "270", price.String())

	limits, err := cat.Limits(TierStarter)
	require.NoError(t, err)
	require.NotNil(t, limits.MaxBuildings)
	require.Equal(t, 5, *limits.MaxBuildings)
	require.Nil(t, limits.MaxUnits)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
