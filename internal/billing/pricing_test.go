package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dt(t DiscountType) *DiscountType { return &t }

func dv(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestComputePrice_NoDiscount(t *testing.T) {
	res, err := ComputePrice(decimal.NewFromInt(250), nil, nil)
	require.NoError(t, err)
	require.True(t, res.FinalPrice.Equal(decimal.NewFromInt(250)))
	require.Nil(t, res.DiscountType)
	require.Nil(t, res.DiscountValue)
}

func TestComputePrice_ZeroDiscountNormalizedToNone(t *testing.T) {
	res, err := ComputePrice(decimal.NewFromInt(99), dt(DiscountPercentage), dv(0))
	require.NoError(t, err)
	require.True(t, res.FinalPrice.Equal(decimal.NewFromInt(99)))
	require.Nil(t, res.DiscountType)
	require.Nil(t, res.DiscountValue)
}

func TestComputePrice_Percentage(t *testing.T) {
	res, err := ComputePrice(decimal.NewFromInt(1000), dt(DiscountPercentage), dv(7))
	require.NoError(t, err)
	require.Equal(t, "930", res.FinalPrice.String())
}

func TestComputePrice_PercentageRounding(t *testing.T) {
	// 99.99 * (1 - 1/3 of a percent is messy); use 33% of 100.15 = 67.1005 -> 67.10
	res, err := ComputePrice(decimal.NewFromFloat(100.15), dt(DiscountPercentage), dv(33))
	require.NoError(t, err)
	require.Equal(t, "67.1", res.FinalPrice.String())
}

func TestComputePrice_FixedFloorsAtZero(t *testing.T) {
	res, err := ComputePrice(decimal.NewFromInt(50), dt(DiscountFixed), dv(80))
	require.NoError(t, err)
	require.True(t, res.FinalPrice.IsZero())
}

func TestComputePrice_Fixed(t *testing.T) {
	res, err := ComputePrice(decimal.NewFromFloat(199.50), dt(DiscountFixed), dv(49.50))
	require.NoError(t, err)
	require.Equal(t, "150", res.FinalPrice.String())
	require.Equal(t, DiscountFixed, *res.DiscountType)
}

func TestComputePrice_RejectsNegativeBase(t *testing.T) {
	_, err := ComputePrice(decimal.NewFromInt(-1), nil, nil)
	require.ErrorIs(t, err, ErrNegativeBasePrice)
}

func TestComputePrice_RejectsPercentageOver100(t *testing.T) {
	_, err := ComputePrice(decimal.NewFromInt(1000), dt(DiscountPercentage), dv(120))
	require.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestComputePrice_RejectsNegativeDiscountValue(t *testing.T) {
	_, err := ComputePrice(decimal.NewFromInt(1000), dt(DiscountFixed), dv(-5))
	require.ErrorIs(t, err, ErrInvalidDiscount)
}
