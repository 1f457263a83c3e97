package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CartUseCase maintains a shopper's cart. Cart lines are references; prices are
// resolved from the live catalog every time the cart is viewed.
type CartUseCase struct {
	carts repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{carts: carts}
}

// Add increments the line for productID, creating it when absent.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	if productID <= 0 {
		return model.CartView{}, domainErrors.InvalidArgument("product id is required")
	}
	if quantity < 1 {
		return model.CartView{}, domainErrors.InvalidArgument("quantity must be at least 1")
	}
	if _, err := u.carts.Add(ctx, userID, productID, quantity); err != nil {
		return model.CartView{}, err
	}
	return u.View(ctx, userID)
}

// SetQuantity replaces the quantity of an existing line.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	if quantity < 1 {
		return model.CartView{}, domainErrors.InvalidArgument("quantity must be at least 1")
	}
	if _, err := u.carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return model.CartView{}, err
	}
	return u.View(ctx, userID)
}

func (u *CartUseCase) Remove(ctx context.Context, userID, productID int64) (model.CartView, error) {
	if err := u.carts.Remove(ctx, userID, productID); err != nil {
		return model.CartView{}, err
	}
	return u.View(ctx, userID)
}

// Clear empties the cart; clearing an empty cart is not an error.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}

func (u *CartUseCase) View(ctx context.Context, userID int64) (model.CartView, error) {
	items, err := u.carts.Items(ctx, userID)
	if err != nil {
		return model.CartView{}, err
	}
	return model.NewCartView(items), nil
}
