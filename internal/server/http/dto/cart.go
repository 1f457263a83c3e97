package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AddCartItemRequest adds quantity units of a product; quantity defaults to 1.
type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  *int  `json:"quantity"`
}

func (r AddCartItemRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	InStock   int             `json:"inStock"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
}

func NewCartResponse(view model.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Image:     item.Image,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
			InStock:   item.Stock,
		})
	}
	return CartResponse{Items: items, TotalQuantity: view.TotalQuantity, TotalPrice: view.TotalPrice}
}
