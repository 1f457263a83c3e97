package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus describes the return merchandise lifecycle.
type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "REQUESTED"
	ReturnStatusApproved  ReturnStatus = "APPROVED"
	ReturnStatusRejected  ReturnStatus = "REJECTED"
	ReturnStatusShipped   ReturnStatus = "SHIPPED"
	ReturnStatusRefunded  ReturnStatus = "REFUNDED"
)

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnStatusRequested: {ReturnStatusApproved, ReturnStatusRejected},
	ReturnStatusApproved:  {ReturnStatusShipped},
	ReturnStatusShipped:   {ReturnStatusRefunded},
}

// Valid reports whether status is a known return status.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusRequested, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusShipped, ReturnStatusRefunded:
		return true
	}
	return false
}

// Open reports whether the return still blocks a new request for the same order.
func (s ReturnStatus) Open() bool {
	return s != ReturnStatusRejected
}

// CanTransitionTo reports whether an admin may move a return from s to next.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Return is a customer's request to send back a delivered order.
type Return struct {
	ID           int64
	OrderID      int64
	UserID       int64
	Reason       string
	Notes        string
	Status       ReturnStatus
	RefundAmount decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
