package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Module opens the PostgreSQL pool and exposes every repository backed by it.
var Module = fx.Options(
	fx.Provide(newStorage, provideRepositories),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type repositories struct {
	fx.Out

	Users    repository.UserRepository
	Products repository.ProductRepository
	Carts    repository.CartRepository
	Coupons  repository.CouponRepository
	Orders   repository.OrderRepository
	Returns  repository.ReturnRepository
}

func provideRepositories(s *Storage) repositories {
	return repositories{
		Users:    s.Users(),
		Products: s.Products(),
		Carts:    s.Carts(),
		Coupons:  s.Coupons(),
		Orders:   s.Orders(),
		Returns:  s.Returns(),
	}
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.StopHook(storage.Close))
}
