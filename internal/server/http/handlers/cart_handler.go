package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CartHandler manages the caller's cart.
type CartHandler struct {
	facade CartFacade
	logger *slog.Logger
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade, logger *slog.Logger) *CartHandler {
	return &CartHandler{facade: facade, logger: logger}
}

// View handles GET /api/cart.
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewCartResponse(view))
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	view, err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.ProductID, req.QuantityOrDefault())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewCartResponse(view))
}

// SetQuantity handles PUT /api/cart/:productId.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}
	view, err := h.facade.SetCartQuantity(c.Request.Context(), CurrentUserID(c), productID, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewCartResponse(view))
}

// Remove handles DELETE /api/cart/:productId.
func (h *CartHandler) Remove(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	view, err := h.facade.RemoveFromCart(c.Request.Context(), CurrentUserID(c), productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewCartResponse(view))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "cart cleared"})
}
