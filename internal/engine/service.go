package engine

import (
	"context"
	"time"
)

// DefaultHoldTTL matches the five minute checkout window used across the
// HTTP layer when no explicit TTL is configured.
const DefaultHoldTTL = 5 * time.Minute

// Service is the public entry point of the reservation core. It wires the
// inventory, hold manager and finalizer together and validates request
// shape before delegating. Collaborator errors are surfaced unchanged so
// the transport layer can map each kind to a status code.
type Service struct {
	inv       *Inventory
	holds     *HoldManager
	finalizer *Finalizer
	holdTTL   time.Duration
}

// NewService assembles a reservation service. notifier may be nil to
// disable booking-confirmed events; holdTTL <= 0 selects DefaultHoldTTL.
func NewService(notifier Notifier, holdTTL time.Duration) *Service {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	inv := NewInventory()
	holds := NewHoldManager(inv)
	return &Service{
		inv:       inv,
		holds:     holds,
		finalizer: NewFinalizer(inv, holds, notifier),
		holdTTL:   holdTTL,
	}
}

// InitializeShow registers a show's seat layout and pricing with the
// inventory. Catalog data is treated as immutable afterwards.
func (s *Service) InitializeShow(showID uint64, layout []SeatSpec, pricing TierPricing) error {
	return s.inv.Initialize(showID, layout, pricing)
}

// Hold claims the given seats for the requester with the configured TTL.
func (s *Service) Hold(showID uint64, requester Requester, seatCodes []string) (Hold, error) {
	if showID == 0 || len(seatCodes) == 0 {
		return Hold{}, ErrInvalidRequest
	}
	return s.holds.CreateHold(showID, requester.ID, seatCodes, s.holdTTL)
}

// Confirm converts an active hold into a booking.
func (s *Service) Confirm(ctx context.Context, holdID string, requester Requester) (Booking, error) {
	if holdID == "" {
		return Booking{}, ErrInvalidRequest
	}
	return s.finalizer.Confirm(ctx, holdID, requester)
}

// Release frees the seats of an active hold. Terminal holds are a
// reported no-op, not an error.
func (s *Service) Release(holdID string, requester Requester) (bool, error) {
	if holdID == "" {
		return false, ErrInvalidRequest
	}
	return s.holds.ReleaseHold(holdID, requester.ID)
}

// GetHold returns the current state of a hold with lazy expiry applied.
func (s *Service) GetHold(holdID string) (Hold, error) {
	return s.holds.Get(holdID)
}

// Seats returns the status of every seat of a show in layout order.
func (s *Service) Seats(showID uint64) ([]SeatStatus, error) {
	return s.inv.Snapshot(showID)
}

// Availability returns total and available seat counts for a show.
func (s *Service) Availability(showID uint64) (total, available int, err error) {
	return s.inv.Availability(showID)
}

// ExpireSweep frees seats of holds past their deadline. Intended to run on
// a background ticker; lazy expiry keeps the engine correct without it.
func (s *Service) ExpireSweep(now time.Time) int {
	return s.holds.ExpireSweep(now)
}

// RestoreBooked re-marks seats that were sold in a previous process
// lifetime, replaying the legal FREE -> HELD -> BOOKED chain. Used at
// startup when inventories are rebuilt from the durable booking ledger.
func (s *Service) RestoreBooked(showID uint64, seats []string) error {
	if len(seats) == 0 {
		return nil
	}
	if err := s.inv.Transition(showID, seats, SeatFree, SeatHeld); err != nil {
		return err
	}
	return s.inv.Transition(showID, seats, SeatHeld, SeatBooked)
}
