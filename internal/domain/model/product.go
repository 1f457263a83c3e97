package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Product is a catalog entry. Products are archived rather than deleted because
// order lines keep pointing at them.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Image       string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps paging parameters into supported bounds.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return f
}

// Offset returns the number of rows to skip for the current page.
func (f ProductFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.PageSize
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items    []Product
	Total    int
	Page     int
	PageSize int
}
