package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create reserves stock, redeems the coupon, writes the order with its line
	// snapshots and clears the cart in a single transaction. A taken order
	// number yields ErrOrderNumberConflict and nothing is written.
	Create(ctx context.Context, req model.PlaceOrder) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// UpdateStatus moves the order from expected to next only if it is still in
	// the expected state.
	UpdateStatus(ctx context.Context, id int64, expected, next model.OrderStatus) (*model.Order, error)
}
