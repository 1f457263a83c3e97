package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type couponRepository struct {
	storage *Storage
}

const couponColumns = `id, code, discount_type, value, min_order_value, max_discount, usage_limit, used_count, active, starts_at, expires_at, created_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var (
		c           model.Coupon
		kind        string
		minOrder    decimal.NullDecimal
		maxDiscount decimal.NullDecimal
		usageLimit  sql.NullInt32
		startsAt    sql.NullTime
		expiresAt   sql.NullTime
	)
	err := row.Scan(&c.ID, &c.Code, &kind, &c.Value, &minOrder, &maxDiscount, &usageLimit, &c.UsedCount, &c.Active, &startsAt, &expiresAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = model.DiscountType(kind)
	if minOrder.Valid {
		c.MinOrderValue = &minOrder.Decimal
	}
	if maxDiscount.Valid {
		c.MaxDiscount = &maxDiscount.Decimal
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int32)
		c.UsageLimit = &limit
	}
	if startsAt.Valid {
		c.StartsAt = &startsAt.Time
	}
	if expiresAt.Valid {
		c.ExpiresAt = &expiresAt.Time
	}
	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return getCoupon(ctx, r.storage.pool, code, false)
}

func getCoupon(ctx context.Context, q querier, code string, forUpdate bool) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code=$1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCoupon(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Create(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	const query = `INSERT INTO coupons (code, discount_type, value, min_order_value, max_discount, usage_limit, active, starts_at, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, used_count, created_at`

	var (
		minOrder    decimal.NullDecimal
		maxDiscount decimal.NullDecimal
		usageLimit  sql.NullInt32
	)
	if coupon.MinOrderValue != nil {
		minOrder = decimal.NewNullDecimal(*coupon.MinOrderValue)
	}
	if coupon.MaxDiscount != nil {
		maxDiscount = decimal.NewNullDecimal(*coupon.MaxDiscount)
	}
	if coupon.UsageLimit != nil {
		usageLimit = sql.NullInt32{Int32: int32(*coupon.UsageLimit), Valid: true}
	}

	err := r.storage.pool.QueryRow(ctx, query,
		coupon.Code, string(coupon.Type), coupon.Value, minOrder, maxDiscount, usageLimit,
		coupon.Active, coupon.StartsAt, coupon.ExpiresAt,
	).Scan(&coupon.ID, &coupon.UsedCount, &coupon.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// redeemCoupon consumes one use unless the limit has been reached.
func redeemCoupon(ctx context.Context, q querier, couponID int64) error {
	const query = `UPDATE coupons SET used_count = used_count + 1
                   WHERE id=$1 AND (usage_limit IS NULL OR used_count < usage_limit)`
	tag, err := q.Exec(ctx, query, couponID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCouponUsageExceeded
	}
	return nil
}
