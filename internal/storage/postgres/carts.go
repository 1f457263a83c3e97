package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

func (r *cartRepository) Add(ctx context.Context, userID, productID int64, quantity int) (*model.CartLine, error) {
	const query = `INSERT INTO cart_lines (user_id, product_id, quantity)
                   SELECT $1, p.id, $3 FROM products p
                   WHERE p.id = $2 AND NOT p.archived AND p.stock >= $3
                   ON CONFLICT (user_id, product_id) DO UPDATE
                   SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = NOW()
                   WHERE (SELECT stock FROM products WHERE id = EXCLUDED.product_id) >= cart_lines.quantity + EXCLUDED.quantity
                   RETURNING user_id, product_id, quantity, created_at, updated_at`

	var line model.CartLine
	err := r.storage.pool.QueryRow(ctx, query, userID, productID, quantity).
		Scan(&line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, classifyUnavailable(ctx, r.storage.pool, productID)
		}
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (*model.CartLine, error) {
	const query = `UPDATE cart_lines c SET quantity = $3, updated_at = NOW()
                   FROM products p
                   WHERE c.user_id = $1 AND c.product_id = $2 AND p.id = c.product_id
                     AND NOT p.archived AND p.stock >= $3
                   RETURNING c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at`
	const exists = `SELECT EXISTS (SELECT 1 FROM cart_lines WHERE user_id=$1 AND product_id=$2)`

	var line model.CartLine
	err := r.storage.pool.QueryRow(ctx, query, userID, productID, quantity).
		Scan(&line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err == nil {
		return &line, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var found bool
	if err := r.storage.pool.QueryRow(ctx, exists, userID, productID).Scan(&found); err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	return nil, classifyUnavailable(ctx, r.storage.pool, productID)
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) error {
	const query = `DELETE FROM cart_lines WHERE user_id=$1 AND product_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	return clearCart(ctx, r.storage.pool, userID)
}

func clearCart(ctx context.Context, q querier, userID int64) error {
	_, err := q.Exec(ctx, `DELETE FROM cart_lines WHERE user_id=$1`, userID)
	return err
}

// Items lists the lines whose product is still on sale. Lines of archived
// products stay stored but are hidden until removed.
func (r *cartRepository) Items(ctx context.Context, userID int64) ([]model.CartItem, error) {
	const query = `SELECT p.id, p.title, p.image, p.price, p.stock, c.quantity
                   FROM cart_lines c JOIN products p ON p.id = c.product_id
                   WHERE c.user_id=$1 AND NOT p.archived
                   ORDER BY c.created_at, c.product_id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CartItem, 0)
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Image, &item.UnitPrice, &item.Stock, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
