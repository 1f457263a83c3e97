package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCartViewScenario(t *testing.T) {
	view := NewCartView([]CartItem{
		{ProductID: 1, Title: "A", UnitPrice: dec("20.00"), Stock: 5, Quantity: 2},
		{ProductID: 2, Title: "B", UnitPrice: dec("9.99"), Stock: 10, Quantity: 1},
	})
	assert.Equal(t, 3, view.TotalQuantity)
	assert.True(t, view.TotalPrice.Equal(dec("49.99")), "got %s", view.TotalPrice)
}

func TestNewCartViewEmpty(t *testing.T) {
	view := NewCartView(nil)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.TotalQuantity)
	assert.True(t, view.TotalPrice.IsZero())
}

func TestProductFilterNormalize(t *testing.T) {
	f := ProductFilter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)

	f = ProductFilter{Page: 3, PageSize: 500}.Normalize()
	assert.Equal(t, 100, f.PageSize)
	assert.Equal(t, 200, ProductFilter{Page: 3, PageSize: 500}.Offset())
	assert.Equal(t, 0, ProductFilter{Page: -1}.Offset())
}

func TestRoleAndIdentity(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.True(t, Identity{UserID: 1, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{UserID: 1, Role: RoleCustomer}.IsAdmin())
}
