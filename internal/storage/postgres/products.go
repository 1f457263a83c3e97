package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, title, description, price, category, stock, image, archived, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Stock, &p.Image, &p.Archived, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	const where = ` WHERE NOT archived
                    AND ($1 = '' OR lower(category) = lower($1))
                    AND ($2 = '' OR title ILIKE '%' || $2 || '%')`
	const countQuery = `SELECT COUNT(*) FROM products` + where
	const pageQuery = `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY id LIMIT $3 OFFSET $4`

	filter = filter.Normalize()
	search := likeEscaper.Replace(filter.Search)

	var total int
	if err := r.storage.pool.QueryRow(ctx, countQuery, filter.Category, search).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Product{}, 0, nil
	}

	rows, err := r.storage.pool.Query(ctx, pageQuery, filter.Category, search, filter.PageSize, filter.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]model.Product, 0, filter.PageSize)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (title, description, price, category, stock, image)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.Title, product.Description, product.Price, product.Category, product.Stock, product.Image,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET title=$2, description=$3, price=$4, category=$5, stock=$6, image=$7, updated_at=NOW()
                   WHERE id=$1
                   RETURNING archived, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Title, product.Description, product.Price, product.Category, product.Stock, product.Image,
	).Scan(&product.Archived, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Archive(ctx context.Context, id int64) error {
	const query = `UPDATE products SET archived=TRUE, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// classifyUnavailable explains why a conditional write on a product matched no
// rows: the product is missing or archived, or it lacks stock.
func classifyUnavailable(ctx context.Context, q querier, productID int64) error {
	const query = `SELECT archived FROM products WHERE id=$1`
	var archived bool
	if err := q.QueryRow(ctx, query, productID).Scan(&archived); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	if archived {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrInsufficientStock
}
