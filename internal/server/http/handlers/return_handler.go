package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ReturnHandler manages return requests.
type ReturnHandler struct {
	facade ReturnFacade
	logger *slog.Logger
}

func NewReturnHandler(facade ReturnFacade, logger *slog.Logger) *ReturnHandler {
	return &ReturnHandler{facade: facade, logger: logger}
}

// Request handles POST /api/orders/:id/returns.
func (h *ReturnHandler) Request(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid return payload")
		return
	}
	ret, err := h.facade.RequestReturn(c.Request.Context(), CurrentUserID(c), orderID, req.Reason, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, dto.NewReturnResponse(*ret))
}

// List handles GET /api/returns.
func (h *ReturnHandler) List(c *gin.Context) {
	returns, err := h.facade.Returns(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewReturnResponses(returns))
}

// ListAll handles GET /api/admin/returns.
func (h *ReturnHandler) ListAll(c *gin.Context) {
	returns, err := h.facade.AllReturns(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewReturnResponses(returns))
}

// UpdateStatus handles PUT /api/admin/returns/:id/status.
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	ret, err := h.facade.UpdateReturnStatus(c.Request.Context(), id, model.ReturnStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, dto.NewReturnResponse(*ret))
}
