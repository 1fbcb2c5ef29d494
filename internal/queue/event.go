// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published when a booking's payment is completed.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type PaymentCompletedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	ShowID      uint64 `json:"show_id"`
	SeatsBooked uint32 `json:"seats_booked"`
	TotalPrice  string `json:"total_price"`
	PaymentID   string `json:"payment_id"`
	PaidAt      string `json:"paid_at"`
}
