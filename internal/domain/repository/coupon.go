package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CouponRepository persists discount codes. Usage is only incremented while an
// order is being written, see OrderRepository.Create.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Create(ctx context.Context, coupon model.Coupon) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
}
