package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ProductHandler serves the public catalog and admin product maintenance.
type ProductHandler struct {
	facade CatalogFacade
	logger *slog.Logger
}

func NewProductHandler(facade CatalogFacade, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{facade: facade, logger: logger}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	page, err := h.facade.Products(c.Request.Context(), model.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewProductPageResponse(page))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewProductResponse(*product))
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), req.Model())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, dto.NewProductResponse(*product))
}

// Update handles PUT /api/admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	product, err := h.facade.UpdateProduct(c.Request.Context(), id, req.Model())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewProductResponse(*product))
}

// Archive handles DELETE /api/admin/products/:id.
func (h *ProductHandler) Archive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.ArchiveProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "product archived"})
}
