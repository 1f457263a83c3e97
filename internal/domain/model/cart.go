package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine references a product the user intends to buy. It never stores a price.
type CartLine struct {
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is a cart line resolved against the live catalog.
type CartItem struct {
	ProductID int64
	Title     string
	Image     string
	UnitPrice decimal.Decimal
	Stock     int
	Quantity  int
}

// Subtotal is the live price multiplied by the line quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartView is the priced cart shown to the shopper.
type CartView struct {
	Items         []CartItem
	TotalQuantity int
	TotalPrice    decimal.Decimal
}

// NewCartView derives totals from resolved cart items.
func NewCartView(items []CartItem) CartView {
	view := CartView{Items: items, TotalPrice: decimal.Zero}
	if view.Items == nil {
		view.Items = []CartItem{}
	}
	for _, item := range items {
		view.TotalQuantity += item.Quantity
		view.TotalPrice = view.TotalPrice.Add(item.Subtotal())
	}
	return view
}
