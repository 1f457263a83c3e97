package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("route not found"))
	})

	authHandler := handlers.NewAuthHandler(facade, logger)
	productHandler := handlers.NewProductHandler(facade, logger)
	cartHandler := handlers.NewCartHandler(facade, logger)
	couponHandler := handlers.NewCouponHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	returnHandler := handlers.NewReturnHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/health", healthHandler.Check)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	user := api.Group("")
	user.Use(middleware.AuthRequired(facade))
	user.GET("/cart", cartHandler.View)
	user.POST("/cart", cartHandler.Add)
	user.DELETE("/cart", cartHandler.Clear)
	user.PUT("/cart/:productId", cartHandler.SetQuantity)
	user.DELETE("/cart/:productId", cartHandler.Remove)
	user.POST("/coupons/validate", couponHandler.Validate)
	user.POST("/orders", orderHandler.Create)
	user.GET("/orders", orderHandler.List)
	user.GET("/orders/:id", orderHandler.Get)
	user.PUT("/orders/:id/status", middleware.AdminRequired(), orderHandler.UpdateStatus)
	user.POST("/orders/:id/returns", returnHandler.Request)
	user.GET("/returns", returnHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Archive)
	admin.GET("/coupons", couponHandler.List)
	admin.POST("/coupons", couponHandler.Create)
	admin.GET("/orders", orderHandler.ListAll)
	admin.GET("/returns", returnHandler.ListAll)
	admin.PUT("/returns/:id/status", returnHandler.UpdateStatus)

	return engine
}
