package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// seedCatalog stores product A (20.00, stock 5) and product B (9.99, stock 10).
func seedCatalog(store *testhelpers.MemoryStore) (model.Product, model.Product) {
	a := store.AddProduct(model.Product{Title: "A", Price: dec("20.00"), Stock: 5, Category: "books", Image: "a.png"})
	b := store.AddProduct(model.Product{Title: "B", Price: dec("9.99"), Stock: 10, Category: "games", Image: "b.png"})
	return a, b
}

func save10() model.Coupon {
	limit := 100
	return model.Coupon{
		Code:          "SAVE10",
		Type:          model.DiscountPercentage,
		Value:         dec("10"),
		MinOrderValue: decPtr("30"),
		MaxDiscount:   decPtr("15"),
		UsageLimit:    &limit,
		Active:        true,
	}
}

func shipping() model.ShippingAddress {
	return model.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345"}
}
