package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CouponUseCase validates discount codes and lets admins manage them.
type CouponUseCase struct {
	coupons repository.CouponRepository
	now     func() time.Time
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(coupons repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{coupons: coupons, now: time.Now}
}

// Validate previews the discount code for subtotal. It never consumes a use;
// redemption happens only when an order is written.
func (u *CouponUseCase) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (model.Discount, error) {
	if code == "" {
		return model.Discount{}, domainErrors.InvalidArgument("coupon code is required")
	}
	if subtotal.IsNegative() {
		return model.Discount{}, domainErrors.InvalidArgument("subtotal must not be negative")
	}
	coupon, err := u.coupons.GetByCode(ctx, code)
	if err != nil {
		return model.Discount{}, err
	}
	return coupon.Apply(u.now(), subtotal)
}

func (u *CouponUseCase) Create(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}
	coupon.UsedCount = 0
	return u.coupons.Create(ctx, coupon)
}

func (u *CouponUseCase) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := u.coupons.List(ctx)
	if err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []model.Coupon{}
	}
	return coupons, nil
}

func validateCoupon(c model.Coupon) error {
	switch {
	case c.Code == "" || strings.ContainsAny(c.Code, " \t\n"):
		return domainErrors.InvalidArgument("coupon code must be non-empty and contain no whitespace")
	case !c.Type.Valid():
		return domainErrors.InvalidArgument("discount type must be %s or %s", model.DiscountPercentage, model.DiscountFixed)
	case !c.Value.IsPositive():
		return domainErrors.InvalidArgument("discount value must be positive")
	case c.Type == model.DiscountPercentage && c.Value.GreaterThan(decimal.NewFromInt(100)):
		return domainErrors.InvalidArgument("percentage must not exceed 100")
	case c.MinOrderValue != nil && c.MinOrderValue.IsNegative():
		return domainErrors.InvalidArgument("minimum order value must not be negative")
	case c.MaxDiscount != nil && !c.MaxDiscount.IsPositive():
		return domainErrors.InvalidArgument("max discount must be positive")
	case !hasCents(c.Value) || (c.MinOrderValue != nil && !hasCents(*c.MinOrderValue)) ||
		(c.MaxDiscount != nil && !hasCents(*c.MaxDiscount)):
		return domainErrors.InvalidArgument("coupon amounts must have at most two decimal places")
	case c.UsageLimit != nil && *c.UsageLimit < 1:
		return domainErrors.InvalidArgument("usage limit must be at least 1")
	case c.StartsAt != nil && c.ExpiresAt != nil && !c.ExpiresAt.After(*c.StartsAt):
		return domainErrors.InvalidArgument("expiry must be after start")
	}
	return nil
}

// hasCents reports whether d fits a NUMERIC(12,2) column without rounding.
func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
