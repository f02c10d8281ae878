package engine

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// HoldState is the lifecycle state of a hold. ACTIVE is the only
// non-terminal state; EXPIRED, CONFIRMED and RELEASED are final.
type HoldState string

const (
	HoldActive    HoldState = "ACTIVE"
	HoldExpired   HoldState = "EXPIRED"
	HoldConfirmed HoldState = "CONFIRMED"
	HoldReleased  HoldState = "RELEASED"
)

// Requester is the authenticated identity attached to hold, confirm and
// release calls. The engine trusts it as-is; authentication happened in
// the transport layer.
type Requester struct {
	ID    uint64
	Email string
	Role  string
}

// Hold is a time-bounded exclusive claim on a set of seats for one show.
// Values returned by the manager are copies; callers cannot mutate the
// manager's records through them.
type Hold struct {
	ID          string    `json:"hold_id"`
	ShowID      uint64    `json:"show_id"`
	RequesterID uint64    `json:"requester_id"`
	Seats       []string  `json:"seats"`
	State       HoldState `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HoldManager issues holds against an Inventory and enforces their
// exclusivity and expiry. Expiry is authoritative on read: every lookup
// first compares the hold's deadline against the clock and treats a passed
// deadline as EXPIRED, freeing the seats, even when the background sweep
// has not run yet. The sweep only exists so seats are returned promptly.
type HoldManager struct {
	inv   *Inventory
	mu    sync.Mutex
	holds map[string]*Hold
	now   func() time.Time
}

// NewHoldManager returns a manager issuing holds against inv.
func NewHoldManager(inv *Inventory) *HoldManager {
	return &HoldManager{
		inv:   inv,
		holds: make(map[string]*Hold),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// newToken generates a random hex identifier. Hold and booking ids are
// opaque tokens returned to the client for correlation.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// dedupe removes duplicate and empty seat codes while preserving the
// caller's order.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// CreateHold claims the given seats for a requester. All seats must be
// FREE; the FREE -> HELD group transition is the sole arbiter between
// racing requests, so on overlap exactly one caller succeeds per seat and
// the loser gets a SeatUnavailableError naming the contested seats.
func (m *HoldManager) CreateHold(showID, requesterID uint64, seatCodes []string, ttl time.Duration) (Hold, error) {
	codes := dedupe(seatCodes)
	if showID == 0 || len(codes) == 0 {
		return Hold{}, ErrInvalidRequest
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.inv.Transition(showID, codes, SeatFree, SeatHeld); err != nil {
		var conflict *SeatConflictError
		if errors.As(err, &conflict) {
			return Hold{}, &SeatUnavailableError{Seats: conflict.Seats}
		}
		return Hold{}, err
	}

	id, err := newToken()
	if err != nil {
		// Seats must not stay HELD with no hold record behind them.
		_ = m.inv.Transition(showID, codes, SeatHeld, SeatFree)
		return Hold{}, err
	}
	now := m.now()
	h := &Hold{
		ID:          id,
		ShowID:      showID,
		RequesterID: requesterID,
		Seats:       codes,
		State:       HoldActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	m.holds[id] = h
	return h.snapshot(), nil
}

// ReleaseHold returns a hold's seats to FREE and marks it RELEASED. The
// call is idempotent: releasing a hold that already reached a terminal
// state reports released=false without error. Releasing another
// requester's hold fails with ErrHoldOwnership.
func (m *HoldManager) ReleaseHold(holdID string, requesterID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holds[holdID]
	if !ok {
		return false, ErrHoldNotFound
	}
	if h.RequesterID != requesterID {
		return false, ErrHoldOwnership
	}
	m.expireLocked(h)
	if h.State != HoldActive {
		return false, nil
	}
	if err := m.inv.Transition(h.ShowID, h.Seats, SeatHeld, SeatFree); err != nil {
		return false, err
	}
	h.State = HoldReleased
	return true, nil
}

// Get returns a copy of the hold, with lazy expiry applied first.
func (m *HoldManager) Get(holdID string) (Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[holdID]
	if !ok {
		return Hold{}, ErrHoldNotFound
	}
	m.expireLocked(h)
	return h.snapshot(), nil
}

// ExpireSweep frees the seats of every ACTIVE hold whose deadline has
// passed and returns the number of holds expired. It runs periodically in
// the background; correctness never depends on its timing.
func (m *HoldManager) ExpireSweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.holds {
		if h.State == HoldActive && !now.Before(h.ExpiresAt) {
			m.expireHold(h)
			n++
		}
	}
	return n
}

// confirmSeats validates a hold for confirmation and moves its seats
// HELD -> BOOKED, marking the hold CONFIRMED. It is the finalizer's entry
// point into the manager's critical section.
func (m *HoldManager) confirmSeats(holdID string, requesterID uint64) (Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holds[holdID]
	if !ok {
		return Hold{}, ErrHoldNotFound
	}
	if h.RequesterID != requesterID {
		return Hold{}, ErrHoldOwnership
	}
	m.expireLocked(h)
	switch h.State {
	case HoldActive:
		// fall through to the commit
	case HoldExpired:
		return Hold{}, ErrHoldExpired
	default:
		// CONFIRMED and RELEASED holds are logically gone.
		return Hold{}, ErrHoldNotFound
	}
	if err := m.inv.Transition(h.ShowID, h.Seats, SeatHeld, SeatBooked); err != nil {
		return Hold{}, err
	}
	h.State = HoldConfirmed
	return h.snapshot(), nil
}

// expireLocked applies the lazy expiry check to a single hold. Caller
// holds m.mu.
func (m *HoldManager) expireLocked(h *Hold) {
	if h.State == HoldActive && !m.now().Before(h.ExpiresAt) {
		m.expireHold(h)
	}
}

// expireHold transitions an ACTIVE hold to EXPIRED and frees its seats.
// Caller holds m.mu and has verified the deadline.
func (m *HoldManager) expireHold(h *Hold) {
	_ = m.inv.Transition(h.ShowID, h.Seats, SeatHeld, SeatFree)
	h.State = HoldExpired
}

func (h *Hold) snapshot() Hold {
	cp := *h
	cp.Seats = append([]string(nil), h.Seats...)
	return cp
}
