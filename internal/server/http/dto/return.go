package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type ReturnRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

type ReturnResponse struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"orderId"`
	UserID       int64           `json:"userId"`
	Reason       string          `json:"reason"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func NewReturnResponse(r model.Return) ReturnResponse {
	return ReturnResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		UserID:       r.UserID,
		Reason:       r.Reason,
		Notes:        r.Notes,
		Status:       string(r.Status),
		RefundAmount: r.RefundAmount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewReturnResponses(returns []model.Return) []ReturnResponse {
	resp := make([]ReturnResponse, 0, len(returns))
	for _, r := range returns {
		resp = append(resp, NewReturnResponse(r))
	}
	return resp
}
