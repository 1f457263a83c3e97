package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ReturnRepository persists return requests.
type ReturnRepository interface {
	// Create fails with ErrAlreadyExists when the order already has an open return.
	Create(ctx context.Context, ret model.Return) (*model.Return, error)
	GetByID(ctx context.Context, id int64) (*model.Return, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Return, error)
	List(ctx context.Context) ([]model.Return, error)
	UpdateStatus(ctx context.Context, id int64, expected, next model.ReturnStatus) (*model.Return, error)
}
