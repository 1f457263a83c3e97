package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase serves product reads and admin catalog maintenance.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Get returns a purchasable product. The price is current as of this call and
// nothing is reserved.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrNotFound
	}
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Archived {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

// List returns a page of non-archived products.
func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) (model.ProductPage, error) {
	filter = filter.Normalize()
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := u.products.List(ctx, filter)
	if err != nil {
		return model.ProductPage{}, err
	}
	if items == nil {
		items = []model.Product{}
	}
	return model.ProductPage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (u *CatalogUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(&product); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, product)
}

func (u *CatalogUseCase) Update(ctx context.Context, id int64, product model.Product) (*model.Product, error) {
	if id <= 0 {
		return nil, domainErrors.ErrNotFound
	}
	if err := validateProduct(&product); err != nil {
		return nil, err
	}
	product.ID = id
	return u.products.Update(ctx, product)
}

// Archive hides the product from listings and carts. Order lines keep their
// reference to it.
func (u *CatalogUseCase) Archive(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrNotFound
	}
	return u.products.Archive(ctx, id)
}

func validateProduct(p *model.Product) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	switch {
	case p.Title == "":
		return domainErrors.InvalidArgument("title is required")
	case !p.Price.IsPositive():
		return domainErrors.InvalidArgument("price must be positive")
	case !hasCents(p.Price):
		return domainErrors.InvalidArgument("price must have at most two decimal places")
	case p.Stock < 0:
		return domainErrors.InvalidArgument("stock must not be negative")
	}
	return nil
}
