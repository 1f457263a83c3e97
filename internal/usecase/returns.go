package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// ReturnUseCase handles return requests for delivered orders.
type ReturnUseCase struct {
	returns repository.ReturnRepository
	orders  repository.OrderRepository
	events  EventEmitter
	now     func() time.Time
}

// NewReturnUseCase constructs ReturnUseCase.
func NewReturnUseCase(returns repository.ReturnRepository, orders repository.OrderRepository, events EventEmitter) *ReturnUseCase {
	return &ReturnUseCase{returns: returns, orders: orders, events: events, now: time.Now}
}

// Request opens a return for the caller's delivered order. The refund covers
// the full order total.
func (u *ReturnUseCase) Request(ctx context.Context, userID, orderID int64, reason, notes string) (*model.Return, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainErrors.InvalidArgument("reason is required")
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusDelivered {
		return nil, fmt.Errorf("order is %s, only delivered orders can be returned: %w", order.Status, domainErrors.ErrInvalidTransition)
	}

	ret, err := u.returns.Create(ctx, model.Return{
		OrderID:      order.ID,
		UserID:       userID,
		Reason:       reason,
		Notes:        strings.TrimSpace(notes),
		Status:       model.ReturnStatusRequested,
		RefundAmount: order.TotalPrice,
	})
	if err != nil {
		return nil, err
	}

	u.events.Emit(model.Event{
		Type:        model.EventReturnRequested,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		ReturnID:    ret.ID,
		UserID:      userID,
		Status:      string(ret.Status),
		Amount:      ret.RefundAmount,
		OccurredAt:  ret.CreatedAt,
	})
	return ret, nil
}

func (u *ReturnUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Return, error) {
	return nonNil(u.returns.ListByUser(ctx, userID))
}

func (u *ReturnUseCase) ListAll(ctx context.Context) ([]model.Return, error) {
	return nonNil(u.returns.List(ctx))
}

// Transition moves a return along REQUESTED, APPROVED, SHIPPED, REFUNDED or
// rejects it.
func (u *ReturnUseCase) Transition(ctx context.Context, id int64, next model.ReturnStatus) (*model.Return, error) {
	if !next.Valid() {
		return nil, domainErrors.InvalidArgument("unknown return status %q", next)
	}
	current, err := u.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", current.Status, next, domainErrors.ErrInvalidTransition)
	}
	updated, err := u.returns.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	u.events.Emit(model.Event{
		Type:       model.EventReturnStatusChanged,
		OrderID:    updated.OrderID,
		ReturnID:   updated.ID,
		UserID:     updated.UserID,
		Status:     string(updated.Status),
		Amount:     updated.RefundAmount,
		OccurredAt: u.now(),
	})
	return updated, nil
}
