package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository reads and maintains the catalog.
type ProductRepository interface {
	// GetByID returns the product including archived ones.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// List returns one page of non-archived products and the total match count.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Archive(ctx context.Context, id int64) error
}
