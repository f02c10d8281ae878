package engine

import (
	"sort"
	"sync"
)

// SeatState is the lifecycle state of a single seat within a show.
// Transitions are monotonic per reservation attempt: FREE -> HELD -> BOOKED,
// or FREE -> HELD -> FREE when a hold is released or expires. A seat never
// reaches BOOKED without passing through HELD.
type SeatState string

const (
	SeatFree   SeatState = "FREE"
	SeatHeld   SeatState = "HELD"
	SeatBooked SeatState = "BOOKED"
)

// Tier is the pricing category of a seat.
type Tier string

const (
	TierRegular Tier = "REGULAR"
	TierPremium Tier = "PREMIUM"
)

// SeatSpec describes one seat of a show's layout at initialization time.
type SeatSpec struct {
	Code string // seat code, e.g. "A1"
	Tier Tier   // pricing tier
}

// TierPricing carries the per-tier seat prices of a show in cents. Pricing
// is supplied by the catalog at Initialize time and is immutable for the
// show's lifetime within the engine.
type TierPricing struct {
	RegularCents uint32
	PremiumCents uint32
}

// SeatStatus is a read-only view of one seat returned by QuerySeats and
// Snapshot.
type SeatStatus struct {
	Code       string    `json:"code"`
	Tier       Tier      `json:"tier"`
	State      SeatState `json:"state"`
	PriceCents uint32    `json:"price_cents"`
}

// seat is the mutable per-seat record. It is only touched while the owning
// showInventory lock is held.
type seat struct {
	tier  Tier
	state SeatState
}

// showInventory owns the seat map of a single show. Each show is
// independently lockable so transitions on different shows never contend.
type showInventory struct {
	mu      sync.Mutex
	pricing TierPricing
	seats   map[string]*seat
	order   []string // layout order, for stable snapshots
	held    int
	booked  int
}

func (s *showInventory) priceFor(t Tier) uint32 {
	if t == TierPremium {
		return s.pricing.PremiumCents
	}
	return s.pricing.RegularCents
}

// Inventory is the per-show seat state table. The outer lock only guards
// the show lookup map; all seat mutation happens under the per-show lock,
// which is the single point of mutual exclusion required by the engine.
type Inventory struct {
	mu    sync.RWMutex
	shows map[uint64]*showInventory
}

// NewInventory returns an empty inventory with no shows registered.
func NewInventory() *Inventory {
	return &Inventory{shows: make(map[uint64]*showInventory)}
}

// Initialize registers the seat layout and pricing for a show and creates
// every seat in the FREE state. It fails with ErrDuplicateShow when the
// show was already initialized and with ErrInvalidRequest when the layout
// is empty or contains duplicate seat codes.
func (inv *Inventory) Initialize(showID uint64, layout []SeatSpec, pricing TierPricing) error {
	if showID == 0 || len(layout) == 0 {
		return ErrInvalidRequest
	}
	si := &showInventory{
		pricing: pricing,
		seats:   make(map[string]*seat, len(layout)),
		order:   make([]string, 0, len(layout)),
	}
	for _, spec := range layout {
		if spec.Code == "" {
			return ErrInvalidRequest
		}
		if _, dup := si.seats[spec.Code]; dup {
			return ErrInvalidRequest
		}
		tier := spec.Tier
		if tier != TierPremium {
			tier = TierRegular
		}
		si.seats[spec.Code] = &seat{tier: tier, state: SeatFree}
		si.order = append(si.order, spec.Code)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, exists := inv.shows[showID]; exists {
		return ErrDuplicateShow
	}
	inv.shows[showID] = si
	return nil
}

// show resolves a show id to its inventory.
func (inv *Inventory) show(showID uint64) (*showInventory, error) {
	inv.mu.RLock()
	si, ok := inv.shows[showID]
	inv.mu.RUnlock()
	if !ok {
		return nil, ErrShowNotFound
	}
	return si, nil
}

// QuerySeats returns the current status of the requested seats. Any code
// that is not part of the show's layout fails the whole call with
// UnknownSeatError naming the offending codes.
func (inv *Inventory) QuerySeats(showID uint64, codes []string) ([]SeatStatus, error) {
	si, err := inv.show(showID)
	if err != nil {
		return nil, err
	}
	si.mu.Lock()
	defer si.mu.Unlock()

	out := make([]SeatStatus, 0, len(codes))
	var unknown []string
	for _, code := range codes {
		st, ok := si.seats[code]
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		out = append(out, SeatStatus{Code: code, Tier: st.tier, State: st.state, PriceCents: si.priceFor(st.tier)})
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownSeatError{Seats: unknown}
	}
	return out, nil
}

// Transition atomically moves the given seat set from one state to another.
// The move is all-or-nothing: when any seat is missing from the layout the
// call fails with UnknownSeatError, when any seat is not currently in the
// from-state it fails with SeatConflictError naming the offending seats,
// and in both cases no seat is mutated. This is the core correctness
// mechanism that prevents partial double-booking.
func (inv *Inventory) Transition(showID uint64, codes []string, from, to SeatState) error {
	if len(codes) == 0 {
		return ErrInvalidRequest
	}
	si, err := inv.show(showID)
	if err != nil {
		return err
	}
	si.mu.Lock()
	defer si.mu.Unlock()

	// Check the full set before touching anything.
	var unknown, conflict []string
	for _, code := range codes {
		st, ok := si.seats[code]
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		if st.state != from {
			conflict = append(conflict, code)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &UnknownSeatError{Seats: unknown}
	}
	if len(conflict) > 0 {
		sort.Strings(conflict)
		return &SeatConflictError{Seats: conflict}
	}

	for _, code := range codes {
		si.seats[code].state = to
	}
	si.applyCount(from, to, len(codes))
	return nil
}

// applyCount keeps the held/booked counters in step with a completed group
// transition. Caller holds the show lock.
func (si *showInventory) applyCount(from, to SeatState, n int) {
	switch from {
	case SeatHeld:
		si.held -= n
	case SeatBooked:
		si.booked -= n
	}
	switch to {
	case SeatHeld:
		si.held += n
	case SeatBooked:
		si.booked += n
	}
}

// Snapshot returns the status of every seat of a show in layout order.
func (inv *Inventory) Snapshot(showID uint64) ([]SeatStatus, error) {
	si, err := inv.show(showID)
	if err != nil {
		return nil, err
	}
	si.mu.Lock()
	defer si.mu.Unlock()

	out := make([]SeatStatus, 0, len(si.order))
	for _, code := range si.order {
		st := si.seats[code]
		out = append(out, SeatStatus{Code: code, Tier: st.tier, State: st.state, PriceCents: si.priceFor(st.tier)})
	}
	return out, nil
}

// Availability returns the total and currently available seat counts for a
// show. The invariant available == total - held - booked holds at every
// instant because the counters only move inside Transition.
func (inv *Inventory) Availability(showID uint64) (total, available int, err error) {
	si, err := inv.show(showID)
	if err != nil {
		return 0, 0, err
	}
	si.mu.Lock()
	defer si.mu.Unlock()
	total = len(si.seats)
	return total, total - si.held - si.booked, nil
}

// PriceSeats computes the tier price of each requested seat and the group
// total in cents.
func (inv *Inventory) PriceSeats(showID uint64, codes []string) (map[string]uint32, uint32, error) {
	statuses, err := inv.QuerySeats(showID, codes)
	if err != nil {
		return nil, 0, err
	}
	prices := make(map[string]uint32, len(statuses))
	var total uint32
	for _, st := range statuses {
		prices[st.Code] = st.PriceCents
		total += st.PriceCents
	}
	return prices, total, nil
}
