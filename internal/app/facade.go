package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// UseCases groups every use case the storefront facade delegates to.
type UseCases struct {
	Auth    *usecase.AuthUseCase
	Catalog *usecase.CatalogUseCase
	Cart    *usecase.CartUseCase
	Coupons *usecase.CouponUseCase
	Orders  *usecase.OrderUseCase
	Returns *usecase.ReturnUseCase
}

// StorefrontFacade exposes the use cases to HTTP handlers.
type StorefrontFacade struct {
	uc     UseCases
	health HealthChecker
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(uc UseCases, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{uc: uc, health: health}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.uc.Auth.Register(ctx, login, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.uc.Auth.Authenticate(ctx, login, password)
}

func (f *StorefrontFacade) ParseToken(token string) (model.Identity, error) {
	return f.uc.Auth.ParseToken(token)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.uc.Catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) (model.ProductPage, error) {
	return f.uc.Catalog.List(ctx, filter)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.uc.Catalog.Create(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, id int64, product model.Product) (*model.Product, error) {
	return f.uc.Catalog.Update(ctx, id, product)
}

func (f *StorefrontFacade) ArchiveProduct(ctx context.Context, id int64) error {
	return f.uc.Catalog.Archive(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID int64) (model.CartView, error) {
	return f.uc.Cart.View(ctx, userID)
}

func (f *StorefrontFacade) AddToCart(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	return f.uc.Cart.Add(ctx, userID, productID, quantity)
}

func (f *StorefrontFacade) SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	return f.uc.Cart.SetQuantity(ctx, userID, productID, quantity)
}

func (f *StorefrontFacade) RemoveFromCart(ctx context.Context, userID, productID int64) (model.CartView, error) {
	return f.uc.Cart.Remove(ctx, userID, productID)
}

func (f *StorefrontFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.uc.Cart.Clear(ctx, userID)
}

// ValidateCoupon prices code against subtotal. A nil subtotal means the
// caller's current cart total.
func (f *StorefrontFacade) ValidateCoupon(ctx context.Context, userID int64, code string, subtotal *decimal.Decimal) (model.Discount, error) {
	if subtotal != nil {
		return f.uc.Coupons.Validate(ctx, code, *subtotal)
	}
	view, err := f.uc.Cart.View(ctx, userID)
	if err != nil {
		return model.Discount{}, err
	}
	return f.uc.Coupons.Validate(ctx, code, view.TotalPrice)
}

func (f *StorefrontFacade) CreateCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	return f.uc.Coupons.Create(ctx, coupon)
}

func (f *StorefrontFacade) Coupons(ctx context.Context) ([]model.Coupon, error) {
	return f.uc.Coupons.List(ctx)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, in model.Checkout) (*model.Order, error) {
	return f.uc.Orders.Place(ctx, in)
}

func (f *StorefrontFacade) Order(ctx context.Context, caller model.Identity, id int64) (*model.Order, error) {
	return f.uc.Orders.Get(ctx, caller, id)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.uc.Orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.uc.Orders.ListAll(ctx, filter)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return f.uc.Orders.UpdateStatus(ctx, id, status)
}

func (f *StorefrontFacade) RequestReturn(ctx context.Context, userID, orderID int64, reason, notes string) (*model.Return, error) {
	return f.uc.Returns.Request(ctx, userID, orderID, reason, notes)
}

func (f *StorefrontFacade) Returns(ctx context.Context, userID int64) ([]model.Return, error) {
	return f.uc.Returns.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) AllReturns(ctx context.Context) ([]model.Return, error) {
	return f.uc.Returns.ListAll(ctx)
}

func (f *StorefrontFacade) UpdateReturnStatus(ctx context.Context, id int64, status model.ReturnStatus) (*model.Return, error) {
	return f.uc.Returns.Transition(ctx, id, status)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
