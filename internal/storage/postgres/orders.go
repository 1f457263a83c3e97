package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, number, user_id, subtotal, discount, total_price, coupon_code,
                      shipping_address, shipping_city, shipping_postal_code, payment_method, status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, req model.PlaceOrder) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		created, err := createOrder(ctx, tx, req)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func createOrder(ctx context.Context, tx pgx.Tx, req model.PlaceOrder) (*model.Order, error) {
	items := make([]model.LineItem, len(req.Items))
	copy(items, req.Items)
	// A fixed locking order keeps concurrent checkouts from deadlocking.
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		line, err := reserveStock(ctx, tx, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	var coupon *model.Coupon
	if req.CouponCode != "" {
		c, err := getCoupon(ctx, tx, req.CouponCode, true)
		if err != nil {
			return nil, err
		}
		coupon = c
	}

	pricing, err := model.PriceLines(lines, coupon, req.PlacedAt)
	if err != nil {
		return nil, err
	}
	if err := pricing.CheckExpectedTotal(req.ExpectedTotal); err != nil {
		return nil, err
	}

	order := &model.Order{
		Number:        req.Number,
		UserID:        req.UserID,
		Subtotal:      pricing.Subtotal,
		Discount:      pricing.Discount,
		TotalPrice:    pricing.Total,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderStatusPending,
		CreatedAt:     req.PlacedAt,
		UpdatedAt:     req.PlacedAt,
	}
	var couponCode sql.NullString
	if coupon != nil {
		if err := redeemCoupon(ctx, tx, coupon.ID); err != nil {
			return nil, err
		}
		code := coupon.Code
		order.CouponCode = &code
		couponCode = sql.NullString{String: code, Valid: true}
	}

	const insertOrder = `INSERT INTO orders (number, user_id, subtotal, discount, total_price, coupon_code,
                             shipping_address, shipping_city, shipping_postal_code, payment_method, status, created_at, updated_at)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
                         RETURNING id`
	err = tx.QueryRow(ctx, insertOrder,
		order.Number, order.UserID, order.Subtotal, order.Discount, order.TotalPrice, couponCode,
		order.Shipping.Address, order.Shipping.City, order.Shipping.PostalCode, order.PaymentMethod,
		string(order.Status), req.PlacedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err, "orders_number_key") {
			return nil, domainErrors.ErrOrderNumberConflict
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const insertLine = `INSERT INTO order_lines (order_id, product_id, title, image, unit_price, quantity)
                        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range lines {
		lines[i].OrderID = order.ID
		err := tx.QueryRow(ctx, insertLine,
			order.ID, lines[i].ProductID, lines[i].Title, lines[i].Image, lines[i].UnitPrice, lines[i].Quantity,
		).Scan(&lines[i].ID)
		if err != nil {
			return nil, fmt.Errorf("insert order line: %w", err)
		}
	}
	order.Lines = lines

	if err := clearCart(ctx, tx, req.UserID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return order, nil
}

// reserveStock decrements stock and snapshots the product in one statement.
func reserveStock(ctx context.Context, tx pgx.Tx, item model.LineItem) (model.OrderLine, error) {
	const query = `UPDATE products SET stock = stock - $2, updated_at = NOW()
                   WHERE id=$1 AND NOT archived AND stock >= $2
                   RETURNING title, price, image`
	line := model.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
	err := tx.QueryRow(ctx, query, item.ProductID, item.Quantity).Scan(&line.Title, &line.UnitPrice, &line.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrderLine{}, classifyUnavailable(ctx, tx, item.ProductID)
		}
		return model.OrderLine{}, err
	}
	return line, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o          model.Order
		couponCode sql.NullString
		status     string
	)
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Subtotal, &o.Discount, &o.TotalPrice, &couponCode,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.PostalCode, &o.PaymentMethod, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if couponCode.Valid {
		o.CouponCode = &couponCode.String
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	orders := []model.Order{*order}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, string(filter.Status))
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) attachLines(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Lines = []model.OrderLine{}
	}

	const query = `SELECT id, order_id, product_id, title, image, unit_price, quantity
                   FROM order_lines WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Title, &l.Image, &l.UnitPrice, &l.Quantity); err != nil {
			return err
		}
		if i, ok := index[l.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, l)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, expected, next model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2 RETURNING id`
	const exists = `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`

	var updated int64
	err := r.storage.pool.QueryRow(ctx, query, id, string(expected), string(next)).Scan(&updated)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		var found bool
		if err := r.storage.pool.QueryRow(ctx, exists, id).Scan(&found); err != nil {
			return nil, err
		}
		if !found {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.ErrInvalidTransition
	}
	return r.GetByID(ctx, updated)
}
