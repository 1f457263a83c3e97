package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid argument", ErrInvalidArgument},
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"insufficient stock", ErrInsufficientStock},
		{"coupon", ErrCouponInapplicable},
		{"transition", ErrInvalidTransition},
		{"total mismatch", ErrTotalMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestCouponReasonsWrapInapplicable(t *testing.T) {
	reasons := []error{
		ErrCouponExpired,
		ErrCouponNotYetActive,
		ErrCouponInactive,
		ErrCouponUsageExceeded,
		ErrCouponBelowMinimum,
	}
	for _, reason := range reasons {
		if !stdErrors.Is(reason, ErrCouponInapplicable) {
			t.Fatalf("expected %v to wrap ErrCouponInapplicable", reason)
		}
	}
	if stdErrors.Is(ErrCouponExpired, ErrCouponInactive) {
		t.Fatal("distinct coupon reasons must not match each other")
	}
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("quantity must be at least %d", 1)
	if !stdErrors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if !strings.Contains(err.Error(), "quantity must be at least 1") {
		t.Fatalf("expected reason in message, got %q", err.Error())
	}
}
