package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the checkout payload. TotalPrice is what the shopper
// saw; it is compared with the computed total.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	ShippingCity    string             `json:"shippingCity"`
	ShippingZip     string             `json:"shippingZip"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalPrice      *decimal.Decimal   `json:"totalPrice"`
	CouponCode      string             `json:"couponCode"`
}

func (r CreateOrderRequest) LineItems() []model.LineItem {
	items := make([]model.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderListQuery struct {
	Status string `form:"status"`
}

type OrderLineResponse struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	Number          string              `json:"orderNumber"`
	UserID          int64               `json:"userId"`
	Items           []OrderLineResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.Decimal     `json:"discount"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
	CouponCode      *string             `json:"couponCode,omitempty"`
	ShippingAddress string              `json:"shippingAddress"`
	ShippingCity    string              `json:"shippingCity"`
	ShippingZip     string              `json:"shippingZip"`
	PaymentMethod   string              `json:"paymentMethod"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			Image:     l.Image,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		UserID:          o.UserID,
		Items:           lines,
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		TotalPrice:      o.TotalPrice,
		CouponCode:      o.CouponCode,
		ShippingAddress: o.Shipping.Address,
		ShippingCity:    o.Shipping.City,
		ShippingZip:     o.Shipping.PostalCode,
		PaymentMethod:   o.PaymentMethod,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderResponses(orders []model.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, NewOrderResponse(o))
	}
	return resp
}
