package model

import "time"

// Booking is the durable record of a confirmed reservation.  Rows are
// written after the in-memory engine commits a hold; they are never
// updated afterwards.  This struct corresponds to a row in the
// `bookings` table.
//
// Fields:
//  ID               – opaque booking identifier issued by the engine.
//  UserID           – user who confirmed the booking.
//  ShowID           – show the seats belong to.
//  TotalAmountCents – tier-priced total for all seats.
//  CreatedAt        – when the booking was committed.
type Booking struct {
	ID               string    // bookings.id
	UserID           uint64    // bookings.user_id
	ShowID           uint64    // bookings.show_id
	TotalAmountCents uint32    // bookings.total_amount_cents
	CreatedAt        time.Time // bookings.created_at
}

// BookingSeat links a booking to one purchased seat.  Together the
// rows of a booking form its full seat set.  This struct corresponds
// to a row in the `booking_seats` table.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – reference to the booking.
//  SeatCode   – seat code within the show (e.g. "A1").
//  PriceCents – tier price charged for this seat.
type BookingSeat struct {
	ID         uint64 // booking_seats.id
	BookingID  string // booking_seats.booking_id
	SeatCode   string // booking_seats.seat_code
	PriceCents uint32 // booking_seats.price_cents
}
