package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

const readHeaderTimeout = 5 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newStorefrontFacade,
		func(f *StorefrontFacade) handlers.StorefrontFacade { return f },
		newHTTPServer,
		newEventDispatcher,
		func(d *worker.EventDispatcher) usecase.EventEmitter { return d },
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth    *usecase.AuthUseCase
	Catalog *usecase.CatalogUseCase
	Cart    *usecase.CartUseCase
	Coupons *usecase.CouponUseCase
	Orders  *usecase.OrderUseCase
	Returns *usecase.ReturnUseCase
	Health  HealthChecker
}

func newStorefrontFacade(p facadeParams) *StorefrontFacade {
	return NewStorefrontFacade(UseCases{
		Auth:    p.Auth,
		Catalog: p.Catalog,
		Cart:    p.Cart,
		Coupons: p.Coupons,
		Orders:  p.Orders,
		Returns: p.Returns,
	}, p.Health)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type dispatcherParams struct {
	fx.In

	Publisher worker.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newEventDispatcher(p dispatcherParams) *worker.EventDispatcher {
	return worker.NewEventDispatcher(p.Publisher, p.Config.EventWorkers, p.Config.EventBuffer, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.EventDispatcher
	Auth       *usecase.AuthUseCase
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.AdminLogin != "" {
				if err := p.Auth.EnsureAdmin(ctx, p.Config.AdminLogin, p.Config.AdminPassword, p.Logger); err != nil {
					return fmt.Errorf("seed admin account: %w", err)
				}
			}

			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			// Requests finished above may still have events queued.
			p.Dispatcher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
