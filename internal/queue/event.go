// Package queue defines message payloads exchanged over the message broker
// and the background consumer for them.
package queue

// Name of the durable queue carrying booking confirmations.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a hold is successfully confirmed
// into a booking. It carries enough for downstream consumers to notify the
// user or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        string   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	UserEmail        string   `json:"user_email"`
	ShowID           uint64   `json:"show_id"`
	Seats            []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
