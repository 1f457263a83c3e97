package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		JWTSecret:         "secret",
		TokenTTL:          time.Hour,
		ShutdownTimeout:   time.Millisecond,
		EventsQueue:       "storefront.events",
		ChannelPoolSize:   1,
		EventWorkers:      1,
		EventBuffer:       1,
		OrderNumberPrefix: "ORD",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var (
		facade  *app.StorefrontFacade
		handler handlers.StorefrontFacade
		emitter usecase.EventEmitter
		events  *worker.EventDispatcher
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store.Users(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(store.Products(), fx.As(new(repository.ProductRepository)))),
			fx.Replace(fx.Annotate(store.Carts(), fx.As(new(repository.CartRepository)))),
			fx.Replace(fx.Annotate(store.Coupons(), fx.As(new(repository.CouponRepository)))),
			fx.Replace(fx.Annotate(store.Orders(), fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(store.Returns(), fx.As(new(repository.ReturnRepository)))),
		),
		fx.Populate(&facade, &handler, &emitter, &events),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
	if handler != facade {
		t.Fatal("expected handlers to use the storefront facade")
	}
	if emitter != usecase.EventEmitter(events) {
		t.Fatal("expected use cases to emit through the dispatcher")
	}
}
