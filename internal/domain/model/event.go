package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a notification emitted after a committed state change.
type EventType string

const (
	EventOrderCreated        EventType = "order.created"
	EventOrderStatusChanged  EventType = "order.status_changed"
	EventReturnRequested     EventType = "return.requested"
	EventReturnStatusChanged EventType = "return.status_changed"
)

// Event is a best-effort notification about an order or return.
type Event struct {
	Type        EventType
	OrderID     int64
	OrderNumber string
	ReturnID    int64
	UserID      int64
	Status      string
	Amount      decimal.Decimal
	OccurredAt  time.Time
}
