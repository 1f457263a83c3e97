package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CartRepository stores cart lines. Writes are single conditional statements
// so concurrent requests for the same user cannot lose updates.
type CartRepository interface {
	// Add increments or creates the line provided the product has enough stock
	// for the resulting quantity.
	Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) (*model.CartLine, error)
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	// Items returns the user's lines joined with live product data.
	Items(ctx context.Context, userID int64) ([]model.CartItem, error)
}
