package order

import "errors"

// Status is the order lifecycle state. Transitions are driven by explicit
// vendor/admin actions plus the customer's one-time payment-proof upload;
// anything outside the table below is rejected.
type Status string

const (
	StatusPendingPayment   Status = "pending_payment"
	StatusPaymentSubmitted Status = "payment_submitted"
	StatusPaymentConfirmed Status = "payment_confirmed"
	StatusPreparing        Status = "preparing"
	StatusShipped          Status = "shipped"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[Status][]Status{
	StatusPendingPayment:   {StatusPaymentSubmitted, StatusCancelled},
	StatusPaymentSubmitted: {StatusPaymentConfirmed, StatusCancelled},
	StatusPaymentConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing:        {StatusShipped, StatusCancelled},
	StatusShipped:          {StatusDelivered},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo consults the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
