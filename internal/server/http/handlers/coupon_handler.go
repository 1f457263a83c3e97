package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CouponHandler validates codes for shoppers and maintains them for admins.
type CouponHandler struct {
	facade CouponFacade
	logger *slog.Logger
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{facade: facade, logger: logger}
}

// Validate handles POST /api/coupons/validate.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code is required")
		return
	}
	discount, err := h.facade.ValidateCoupon(c.Request.Context(), CurrentUserID(c), req.Code, req.Subtotal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewDiscountResponse(discount))
}

// Create handles POST /api/admin/coupons.
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid coupon payload")
		return
	}
	coupon, err := h.facade.CreateCoupon(c.Request.Context(), req.Model())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, dto.NewCouponResponse(*coupon))
}

// List handles GET /api/admin/coupons.
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.facade.Coupons(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := make([]dto.CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		resp = append(resp, dto.NewCouponResponse(coupon))
	}
	respond(c, http.StatusOK, resp)
}
