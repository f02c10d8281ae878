package engine

import (
	"context"
	"log"
	"sync"
	"time"
)

// Booking is the permanent record created when a hold is confirmed. It is
// immutable once created and requires no further synchronization.
type Booking struct {
	ID          string            `json:"booking_id"`
	ShowID      uint64            `json:"show_id"`
	RequesterID uint64            `json:"requester_id"`
	Seats       []string          `json:"seats"`
	SeatPrices  map[string]uint32 `json:"seat_prices"`
	TotalCents  uint32            `json:"total_cents"`
	CreatedAt   time.Time         `json:"created_at"`
}

// BookingEvent is the payload handed to the notification port after a
// successful confirm.
type BookingEvent struct {
	BookingID      string
	ShowID         uint64
	RequesterID    uint64
	RequesterEmail string
	Seats          []string
	TotalCents     uint32
	ConfirmedAt    time.Time
}

// Notifier is the notification port. The concrete transport (message
// queue, HTTP callback, log) is an external collaborator detail; the
// finalizer only hands over a plain event payload.
type Notifier interface {
	BookingConfirmed(ctx context.Context, ev BookingEvent) error
}

// Finalizer converts active holds into bookings. Confirm is the single
// commit point: the HELD -> BOOKED group transition either moves every
// seat of the hold or fails with no Booking created.
type Finalizer struct {
	inv      *Inventory
	holds    *HoldManager
	notifier Notifier // nil disables notifications

	mu       sync.RWMutex
	bookings map[string]Booking
	now      func() time.Time
}

// NewFinalizer returns a finalizer committing holds from holds against
// inv. notifier may be nil.
func NewFinalizer(inv *Inventory, holds *HoldManager, notifier Notifier) *Finalizer {
	return &Finalizer{
		inv:      inv,
		holds:    holds,
		notifier: notifier,
		bookings: make(map[string]Booking),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Confirm commits the hold identified by holdID on behalf of requester.
// The hold must exist, belong to the requester and still be ACTIVE and
// unexpired; otherwise ErrHoldNotFound, ErrHoldOwnership or ErrHoldExpired
// is returned and no Booking is created. On success the hold's seats are
// BOOKED, the hold is CONFIRMED and the returned Booking carries the
// tier-priced total.
//
// Notification is fire-and-forget: a publish failure is logged and never
// rolls the booking back. The Booking is the source of truth.
func (f *Finalizer) Confirm(ctx context.Context, holdID string, requester Requester) (Booking, error) {
	if holdID == "" {
		return Booking{}, ErrInvalidRequest
	}
	h, err := f.holds.confirmSeats(holdID, requester.ID)
	if err != nil {
		return Booking{}, err
	}

	prices, total, err := f.inv.PriceSeats(h.ShowID, h.Seats)
	if err != nil {
		// Seats are part of the show or the transition above would have
		// failed; reaching this means the inventory disappeared mid-call.
		return Booking{}, err
	}
	id, err := newToken()
	if err != nil {
		return Booking{}, err
	}
	b := Booking{
		ID:          id,
		ShowID:      h.ShowID,
		RequesterID: requester.ID,
		Seats:       h.Seats,
		SeatPrices:  prices,
		TotalCents:  total,
		CreatedAt:   f.now(),
	}
	f.mu.Lock()
	f.bookings[b.ID] = b
	f.mu.Unlock()

	if f.notifier != nil {
		ev := BookingEvent{
			BookingID:      b.ID,
			ShowID:         b.ShowID,
			RequesterID:    requester.ID,
			RequesterEmail: requester.Email,
			Seats:          append([]string(nil), b.Seats...),
			TotalCents:     b.TotalCents,
			ConfirmedAt:    b.CreatedAt,
		}
		// Detached from the request context so a cancelled request does
		// not suppress the advisory event.
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := f.notifier.BookingConfirmed(nctx, ev); err != nil {
				log.Printf("engine: booking-confirmed notify failed for %s: %v", ev.BookingID, err)
			}
		}()
	}
	return b, nil
}

// GetBooking returns a previously created booking by id.
func (f *Finalizer) GetBooking(id string) (Booking, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	b, ok := f.bookings[id]
	return b, ok
}
