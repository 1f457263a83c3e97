package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewCouponUseCase,
	NewOrderUseCase,
	NewReturnUseCase,
	newOrderNumberGenerator,
)

func newOrderNumberGenerator(cfg *config.Config) *OrderNumberGenerator {
	return NewOrderNumberGenerator(cfg.OrderNumberPrefix)
}
