package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBasePrice = errors.New("base price must not be negative")
	ErrInvalidDiscount   = errors.New("invalid discount")
)

var oneHundred = decimal.NewFromInt(100)

// PriceResult is the outcome of applying a discount to a base price.
// DiscountType/DiscountValue are the normalized discount actually applied:
// a zero or absent discount comes back as (nil, nil), not as a degenerate
// zero-value discount.
type PriceResult struct {
	BasePrice     decimal.Decimal
	DiscountType  *DiscountType
	DiscountValue *decimal.Decimal
	FinalPrice    decimal.Decimal
}

// ComputePrice applies a discount to basePrice and rounds the result to two
// decimal places (half-up). It is pure and safe to call for quoting without
// touching any subscription.
//
// Percentage discounts must lie in [0,100]; fixed discounts must not be
// negative and floor the result at zero. Out-of-range input is rejected here
// rather than producing a negative price downstream.
func ComputePrice(basePrice decimal.Decimal, discountType *DiscountType, discountValue *decimal.Decimal) (PriceResult, error) {
	if basePrice.IsNegative() {
		return PriceResult{}, ErrNegativeBasePrice
	}

	// No-op discount: absent type, absent value, or value of zero.
	if discountType == nil || discountValue == nil || discountValue.IsZero() {
		return PriceResult{
			BasePrice:  basePrice,
			FinalPrice: basePrice.Round(2),
		}, nil
	}

	if !discountType.Valid() {
		return PriceResult{}, fmt.Errorf("%w: unknown type %q", ErrInvalidDiscount, *discountType)
	}
	if discountValue.IsNegative() {
		return PriceResult{}, fmt.Errorf("%w: value must not be negative", ErrInvalidDiscount)
	}

	var final decimal.Decimal
	switch *discountType {
	case DiscountPercentage:
		if discountValue.GreaterThan(oneHundred) {
			return PriceResult{}, fmt.Errorf("%w: percentage must be within [0,100]", ErrInvalidDiscount)
		}
		final = basePrice.Mul(oneHundred.Sub(*discountValue)).Div(oneHundred)
	case DiscountFixed:
		final = basePrice.Sub(*discountValue)
		if final.IsNegative() {
			final = decimal.Zero
		}
	}

	dt := *discountType
	dv := *discountValue
	return PriceResult{
		BasePrice:     basePrice,
		DiscountType:  &dt,
		DiscountValue: &dv,
		FinalPrice:    final.Round(2),
	}, nil
}
