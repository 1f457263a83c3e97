package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (model.Identity, error)
}

// Register returns a customer and a fixed token unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleCustomer}, "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleCustomer}, "token", nil
}

// ParseToken treats the token "admin" as an administrator and anything else
// as customer 1.
func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "admin" {
		return model.Identity{UserID: 100, Role: model.RoleAdmin}, nil
	}
	return model.Identity{UserID: 1, Role: model.RoleCustomer}, nil
}

// CatalogFacadeStub provides controllable behaviour for product endpoints.
type CatalogFacadeStub struct {
	ProductFn  func(context.Context, int64) (*model.Product, error)
	ProductsFn func(context.Context, model.ProductFilter) (model.ProductPage, error)
	CreateFn   func(context.Context, model.Product) (*model.Product, error)
	UpdateFn   func(context.Context, int64, model.Product) (*model.Product, error)
	ArchiveFn  func(context.Context, int64) error
}

func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Title: "Lamp", Price: decimal.RequireFromString("19.99"), Stock: 3}, nil
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) (model.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	filter = filter.Normalize()
	return model.ProductPage{Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, id int64, product model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, product)
	}
	product.ID = id
	return &product, nil
}

func (s CatalogFacadeStub) ArchiveProduct(ctx context.Context, id int64) error {
	if s.ArchiveFn != nil {
		return s.ArchiveFn(ctx, id)
	}
	return nil
}

// CartFacadeStub records nothing and returns an empty cart by default.
type CartFacadeStub struct {
	CartFn   func(context.Context, int64) (model.CartView, error)
	AddFn    func(context.Context, int64, int64, int) (model.CartView, error)
	SetFn    func(context.Context, int64, int64, int) (model.CartView, error)
	RemoveFn func(context.Context, int64, int64) (model.CartView, error)
	ClearFn  func(context.Context, int64) error
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (model.CartView, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return model.NewCartView(nil), nil
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	return model.NewCartView(nil), nil
}

func (s CartFacadeStub) SetCartQuantity(ctx context.Context, userID, productID int64, quantity int) (model.CartView, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, userID, productID, quantity)
	}
	return model.NewCartView(nil), nil
}

func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, productID int64) (model.CartView, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return model.NewCartView(nil), nil
}

func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// CouponFacadeStub simulates coupon validation and administration.
type CouponFacadeStub struct {
	ValidateFn func(context.Context, int64, string, *decimal.Decimal) (model.Discount, error)
	CreateFn   func(context.Context, model.Coupon) (*model.Coupon, error)
	CouponsFn  func(context.Context) ([]model.Coupon, error)
}

func (s CouponFacadeStub) ValidateCoupon(ctx context.Context, userID int64, code string, subtotal *decimal.Decimal) (model.Discount, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, userID, code, subtotal)
	}
	return model.Discount{Code: code, Type: model.DiscountFixed, Value: decimal.NewFromInt(5), Amount: decimal.NewFromInt(5)}, nil
}

func (s CouponFacadeStub) CreateCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, coupon)
	}
	coupon.ID = 1
	return &coupon, nil
}

func (s CouponFacadeStub) Coupons(ctx context.Context) ([]model.Coupon, error) {
	if s.CouponsFn != nil {
		return s.CouponsFn(ctx)
	}
	return nil, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn     func(context.Context, model.Checkout) (*model.Order, error)
	OrderFn     func(context.Context, model.Identity, int64) (*model.Order, error)
	OrdersFn    func(context.Context, int64) ([]model.Order, error)
	AllOrdersFn func(context.Context, model.OrderFilter) ([]model.Order, error)
	UpdateFn    func(context.Context, int64, model.OrderStatus) (*model.Order, error)
}

// PlaceOrder delegates to provided function or returns a pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, in model.Checkout) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return &model.Order{ID: 1, Number: "ORD-1", UserID: in.UserID, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, caller model.Identity, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	return &model.Order{ID: id, Number: "ORD-1", UserID: caller.UserID, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, Number: "ORD-1", UserID: userID}}, nil
}

func (s OrderFacadeStub) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return nil, nil
}

func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

// ReturnFacadeStub simulates return requests.
type ReturnFacadeStub struct {
	RequestFn    func(context.Context, int64, int64, string, string) (*model.Return, error)
	ReturnsFn    func(context.Context, int64) ([]model.Return, error)
	AllReturnsFn func(context.Context) ([]model.Return, error)
	UpdateFn     func(context.Context, int64, model.ReturnStatus) (*model.Return, error)
}

func (s ReturnFacadeStub) RequestReturn(ctx context.Context, userID, orderID int64, reason, notes string) (*model.Return, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, userID, orderID, reason, notes)
	}
	return &model.Return{ID: 1, OrderID: orderID, UserID: userID, Reason: reason, Notes: notes, Status: model.ReturnStatusRequested}, nil
}

func (s ReturnFacadeStub) Returns(ctx context.Context, userID int64) ([]model.Return, error) {
	if s.ReturnsFn != nil {
		return s.ReturnsFn(ctx, userID)
	}
	return nil, nil
}

func (s ReturnFacadeStub) AllReturns(ctx context.Context) ([]model.Return, error) {
	if s.AllReturnsFn != nil {
		return s.AllReturnsFn(ctx)
	}
	return nil, nil
}

func (s ReturnFacadeStub) UpdateReturnStatus(ctx context.Context, id int64, status model.ReturnStatus) (*model.Return, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, status)
	}
	return &model.Return{ID: id, Status: status}, nil
}

// HealthFacadeStub reports Err from every check.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CouponFacadeStub
	OrderFacadeStub
	ReturnFacadeStub
	HealthFacadeStub
}
