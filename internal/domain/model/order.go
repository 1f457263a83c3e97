package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// Valid reports whether status is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
}

// Order is an immutable purchase record; only Status changes after creation.
type Order struct {
	ID            int64
	Number        string
	UserID        int64
	Lines         []OrderLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	TotalPrice    decimal.Decimal
	CouponCode    *string
	Shipping      ShippingAddress
	PaymentMethod string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderLine is a frozen copy of product data taken at purchase time.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Title     string
	Image     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal is unit price multiplied by quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineItem is a requested product and quantity.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Checkout is a checkout request as received from the shopper. TotalPrice is
// the total the shopper was shown.
type Checkout struct {
	UserID        int64
	Items         []LineItem
	Shipping      ShippingAddress
	PaymentMethod string
	TotalPrice    *decimal.Decimal
	CouponCode    string
}

// PlaceOrder carries a validated checkout request to storage.
type PlaceOrder struct {
	UserID        int64
	Number        string
	Items         []LineItem
	Shipping      ShippingAddress
	PaymentMethod string
	ExpectedTotal *decimal.Decimal
	CouponCode    string
	PlacedAt      time.Time
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status OrderStatus
}

// Pricing is the computed money breakdown of an order.
type Pricing struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// PriceLines totals snapshot lines and applies an optional coupon. The discount is
// rounded to cents so that the stored total is exact.
func PriceLines(lines []OrderLine, coupon *Coupon, now time.Time) (Pricing, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}

	pricing := Pricing{Subtotal: subtotal, Discount: decimal.Zero, Total: subtotal}
	if coupon == nil {
		return pricing, nil
	}

	discount, err := coupon.Apply(now, subtotal)
	if err != nil {
		return Pricing{}, err
	}
	pricing.Discount = discount.Amount.Round(2)
	pricing.Total = subtotal.Sub(pricing.Discount)
	return pricing, nil
}

// CheckExpectedTotal compares the client-side total with the computed one.
func (p Pricing) CheckExpectedTotal(expected *decimal.Decimal) error {
	if expected == nil || expected.IsZero() {
		return nil
	}
	if !expected.Equal(p.Total) {
		return domainErrors.ErrTotalMismatch
	}
	return nil
}
