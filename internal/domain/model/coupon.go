package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// DiscountType selects how a coupon value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Valid reports whether discount type is supported.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

var hundred = decimal.NewFromInt(100)

// Coupon describes a redeemable discount code. Optional limits are nil when unset.
type Coupon struct {
	ID            int64
	Code          string
	Type          DiscountType
	Value         decimal.Decimal
	MinOrderValue *decimal.Decimal
	MaxDiscount   *decimal.Decimal
	UsageLimit    *int
	UsedCount     int
	Active        bool
	StartsAt      *time.Time
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

// Discount is the outcome of applying a coupon to a subtotal.
type Discount struct {
	Code   string
	Type   DiscountType
	Value  decimal.Decimal
	Amount decimal.Decimal
}

// CheckApplicable returns nil when the coupon may be used at now for subtotal.
func (c Coupon) CheckApplicable(now time.Time, subtotal decimal.Decimal) error {
	switch {
	case !c.Active:
		return domainErrors.ErrCouponInactive
	case c.StartsAt != nil && now.Before(*c.StartsAt):
		return domainErrors.ErrCouponNotYetActive
	case c.ExpiresAt != nil && now.After(*c.ExpiresAt):
		return domainErrors.ErrCouponExpired
	case c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit:
		return domainErrors.ErrCouponUsageExceeded
	case c.MinOrderValue != nil && subtotal.LessThan(*c.MinOrderValue):
		return domainErrors.ErrCouponBelowMinimum
	}
	return nil
}

// DiscountFor computes the discount amount for subtotal without rounding.
// The result is never negative, never above the cap and never above subtotal.
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch c.Type {
	case DiscountPercentage:
		raw = subtotal.Mul(c.Value).Div(hundred)
	case DiscountFixed:
		raw = c.Value
	default:
		return decimal.Zero
	}
	if c.MaxDiscount != nil && raw.GreaterThan(*c.MaxDiscount) {
		raw = *c.MaxDiscount
	}
	if raw.GreaterThan(subtotal) {
		raw = subtotal
	}
	if raw.IsNegative() {
		return decimal.Zero
	}
	return raw
}

// Apply validates the coupon and computes its discount.
func (c Coupon) Apply(now time.Time, subtotal decimal.Decimal) (Discount, error) {
	if err := c.CheckApplicable(now, subtotal); err != nil {
		return Discount{}, err
	}
	return Discount{
		Code:   c.Code,
		Type:   c.Type,
		Value:  c.Value,
		Amount: c.DiscountFor(subtotal),
	}, nil
}
