package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ValidateCouponRequest checks a code against a subtotal. Without a subtotal
// the caller's current cart total is used.
type ValidateCouponRequest struct {
	Code     string           `json:"code" binding:"required"`
	Subtotal *decimal.Decimal `json:"subtotal"`
}

type DiscountResponse struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

func NewDiscountResponse(d model.Discount) DiscountResponse {
	return DiscountResponse{Code: d.Code, Type: string(d.Type), Value: d.Value, Amount: d.Amount}
}

// CouponRequest is the admin payload for a new coupon. Active defaults to true.
type CouponRequest struct {
	Code          string           `json:"code" binding:"required"`
	Type          string           `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value         decimal.Decimal  `json:"value"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	UsageLimit    *int             `json:"usageLimit"`
	Active        *bool            `json:"active"`
	StartsAt      *time.Time       `json:"startsAt"`
	ExpiresAt     *time.Time       `json:"expiresAt"`
}

func (r CouponRequest) Model() model.Coupon {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.Coupon{
		Code:          r.Code,
		Type:          model.DiscountType(r.Type),
		Value:         r.Value,
		MinOrderValue: r.MinOrderValue,
		MaxDiscount:   r.MaxDiscount,
		UsageLimit:    r.UsageLimit,
		Active:        active,
		StartsAt:      r.StartsAt,
		ExpiresAt:     r.ExpiresAt,
	}
}

type CouponResponse struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	Type          string           `json:"type"`
	Value         decimal.Decimal  `json:"value"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	UsedCount     int              `json:"usedCount"`
	Active        bool             `json:"active"`
	StartsAt      *time.Time       `json:"startsAt,omitempty"`
	ExpiresAt     *time.Time       `json:"expiresAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func NewCouponResponse(c model.Coupon) CouponResponse {
	return CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		Type:          string(c.Type),
		Value:         c.Value,
		MinOrderValue: c.MinOrderValue,
		MaxDiscount:   c.MaxDiscount,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		Active:        c.Active,
		StartsAt:      c.StartsAt,
		ExpiresAt:     c.ExpiresAt,
		CreatedAt:     c.CreatedAt,
	}
}
