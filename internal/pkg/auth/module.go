package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the password hasher and token strategy built from config.
var Module = fx.Provide(
	newPasswordHasher,
	newTokenStrategy,
)

type moduleParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p moduleParams) PasswordHasher {
	return NewBcryptHasher(p.Config.BcryptCost)
}

func newTokenStrategy(p moduleParams) Strategy {
	return NewHMACStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
