package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const orderNumberAttempts = 3

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	numbers *OrderNumberGenerator
	events  EventEmitter
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, numbers *OrderNumberGenerator, events EventEmitter, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, numbers: numbers, events: events, logger: logger, now: time.Now}
}

// Place writes an order from the requested lines. Stock, coupon redemption and
// cart clearing either all happen or none do.
func (u *OrderUseCase) Place(ctx context.Context, in model.Checkout) (*model.Order, error) {
	req, err := u.buildRequest(in)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		req.PlacedAt = u.now()
		req.Number = u.numbers.Next(req.PlacedAt)

		order, err := u.orders.Create(ctx, req)
		if errors.Is(err, domainErrors.ErrOrderNumberConflict) {
			u.logger.Warn("order number collision", slog.String("number", req.Number), slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		u.events.Emit(model.Event{
			Type:        model.EventOrderCreated,
			OrderID:     order.ID,
			OrderNumber: order.Number,
			UserID:      order.UserID,
			Status:      string(order.Status),
			Amount:      order.TotalPrice,
			OccurredAt:  order.CreatedAt,
		})
		return order, nil
	}
	return nil, fmt.Errorf("allocate order number after %d attempts: %w", orderNumberAttempts, domainErrors.ErrOrderNumberConflict)
}

func (u *OrderUseCase) buildRequest(in model.Checkout) (model.PlaceOrder, error) {
	if len(in.Items) == 0 {
		return model.PlaceOrder{}, domainErrors.InvalidArgument("order must contain at least one item")
	}
	seen := make(map[int64]struct{}, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID <= 0 {
			return model.PlaceOrder{}, domainErrors.InvalidArgument("product id is required")
		}
		if item.Quantity < 1 {
			return model.PlaceOrder{}, domainErrors.InvalidArgument("quantity for product %d must be at least 1", item.ProductID)
		}
		if _, dup := seen[item.ProductID]; dup {
			return model.PlaceOrder{}, domainErrors.InvalidArgument("product %d listed more than once", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}

	shipping := model.ShippingAddress{
		Address:    strings.TrimSpace(in.Shipping.Address),
		City:       strings.TrimSpace(in.Shipping.City),
		PostalCode: strings.TrimSpace(in.Shipping.PostalCode),
	}
	if shipping.Address == "" || shipping.City == "" || shipping.PostalCode == "" {
		return model.PlaceOrder{}, domainErrors.InvalidArgument("shipping address, city and postal code are required")
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		return model.PlaceOrder{}, domainErrors.InvalidArgument("payment method is required")
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return model.PlaceOrder{}, domainErrors.InvalidArgument("total price must not be negative")
	}

	return model.PlaceOrder{
		UserID:        in.UserID,
		Items:         in.Items,
		Shipping:      shipping,
		PaymentMethod: payment,
		ExpectedTotal: in.TotalPrice,
		CouponCode:    strings.TrimSpace(in.CouponCode),
	}, nil
}

// Get returns the order when the caller owns it or is an admin.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Identity, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the caller's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return nonNil(u.orders.ListByUser(ctx, userID))
}

func (u *OrderUseCase) ListAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domainErrors.InvalidArgument("unknown order status %q", filter.Status)
	}
	return nonNil(u.orders.List(ctx, filter))
}

// UpdateStatus applies an admin transition. A concurrent change between the read
// and the conditional update surfaces as ErrInvalidTransition.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id int64, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, domainErrors.InvalidArgument("unknown order status %q", next)
	}
	current, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", current.Status, next, domainErrors.ErrInvalidTransition)
	}
	updated, err := u.orders.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	u.events.Emit(model.Event{
		Type:        model.EventOrderStatusChanged,
		OrderID:     updated.ID,
		OrderNumber: updated.Number,
		UserID:      updated.UserID,
		Status:      string(updated.Status),
		Amount:      updated.TotalPrice,
		OccurredAt:  u.now(),
	})
	return updated, nil
}

func nonNil[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
