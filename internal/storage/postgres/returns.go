package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type returnRepository struct {
	storage *Storage
}

const returnColumns = `id, order_id, user_id, reason, notes, status, refund_amount, created_at, updated_at`

func scanReturn(row pgx.Row) (*model.Return, error) {
	var (
		ret    model.Return
		status string
	)
	err := row.Scan(&ret.ID, &ret.OrderID, &ret.UserID, &ret.Reason, &ret.Notes, &status, &ret.RefundAmount, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ret.Status = model.ReturnStatus(status)
	return &ret, nil
}

func (r *returnRepository) Create(ctx context.Context, ret model.Return) (*model.Return, error) {
	const query = `INSERT INTO returns (order_id, user_id, reason, notes, status, refund_amount)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		ret.OrderID, ret.UserID, ret.Reason, ret.Notes, string(ret.Status), ret.RefundAmount,
	).Scan(&ret.ID, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "idx_returns_open_order") {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) GetByID(ctx context.Context, id int64) (*model.Return, error) {
	const query = `SELECT ` + returnColumns + ` FROM returns WHERE id=$1`
	ret, err := scanReturn(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return ret, nil
}

func (r *returnRepository) ListByUser(ctx context.Context, userID int64) ([]model.Return, error) {
	const query = `SELECT ` + returnColumns + ` FROM returns WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *returnRepository) List(ctx context.Context) ([]model.Return, error) {
	const query = `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query)
}

func (r *returnRepository) list(ctx context.Context, query string, args ...any) ([]model.Return, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Return, 0)
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *returnRepository) UpdateStatus(ctx context.Context, id int64, expected, next model.ReturnStatus) (*model.Return, error) {
	const query = `UPDATE returns SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2
                   RETURNING ` + returnColumns
	ret, err := scanReturn(r.storage.pool.QueryRow(ctx, query, id, string(expected), string(next)))
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrInvalidTransition
}
