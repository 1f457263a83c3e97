package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCouponInapplicable  = errors.New("coupon is not applicable")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTotalMismatch       = errors.New("order total does not match current prices")
	ErrOrderNumberConflict = errors.New("order number already taken")
)

// Coupon failures all match ErrCouponInapplicable through errors.Is.
var (
	ErrCouponExpired       = fmt.Errorf("%w: coupon has expired", ErrCouponInapplicable)
	ErrCouponNotYetActive  = fmt.Errorf("%w: coupon is not active yet", ErrCouponInapplicable)
	ErrCouponInactive      = fmt.Errorf("%w: coupon is disabled", ErrCouponInapplicable)
	ErrCouponUsageExceeded = fmt.Errorf("%w: coupon usage limit reached", ErrCouponInapplicable)
	ErrCouponBelowMinimum  = fmt.Errorf("%w: order subtotal is below coupon minimum", ErrCouponInapplicable)
)

// InvalidArgument wraps ErrInvalidArgument with a client-facing reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
