package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
}

type CatalogFacade interface {
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, filter model.ProductFilter) (model.ProductPage, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, product model.Product) (*model.Product, error)
	ArchiveProduct(ctx context.Context, id int64) error
}

type CartFacade interface {
	Cart(ctx context.Context, userID int64) (model.CartView, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error)
	SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) (model.CartView, error)
	ClearCart(ctx context.Context, userID int64) error
}

type CouponFacade interface {
	// ValidateCoupon prices code against subtotal, or against the caller's cart
	// when subtotal is nil.
	ValidateCoupon(ctx context.Context, userID int64, code string, subtotal *decimal.Decimal) (model.Discount, error)
	CreateCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error)
	Coupons(ctx context.Context) ([]model.Coupon, error)
}

type OrderFacade interface {
	PlaceOrder(ctx context.Context, in model.Checkout) (*model.Order, error)
	Order(ctx context.Context, caller model.Identity, id int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

type ReturnFacade interface {
	RequestReturn(ctx context.Context, userID, orderID int64, reason, notes string) (*model.Return, error)
	Returns(ctx context.Context, userID int64) ([]model.Return, error)
	AllReturns(ctx context.Context) ([]model.Return, error)
	UpdateReturnStatus(ctx context.Context, id int64, status model.ReturnStatus) (*model.Return, error)
}

type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CouponFacade
	OrderFacade
	ReturnFacade
	HealthFacade
}
