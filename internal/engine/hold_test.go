package engine

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestManager(t *testing.T, codes ...string) (*Inventory, *HoldManager) {
	t.Helper()
	inv := newTestInventory(t, 1, testLayout(codes...))
	return inv, NewHoldManager(inv)
}

func seatState(t *testing.T, inv *Inventory, showID uint64, code string) SeatState {
	t.Helper()
	states, err := inv.QuerySeats(showID, []string{code})
	if err != nil {
		t.Fatalf("QuerySeats(%s) error: %v", code, err)
	}
	return states[0].State
}

func TestCreateHold(t *testing.T) {
	t.Parallel()
	inv, m := newTestManager(t, "A1", "A2", "A3")

	h, err := m.CreateHold(1, 10, []string{"A1", "A2", "A2"}, time.Minute)
	if err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}
	if h.ID == "" || h.State != HoldActive {
		t.Fatalf("unexpected hold: %+v", h)
	}
	if len(h.Seats) != 2 {
		t.Fatalf("expected deduplicated seats, got %v", h.Seats)
	}
	if got := seatState(t, inv, 1, "A1"); got != SeatHeld {
		t.Fatalf("A1 = %s, want HELD", got)
	}
	if got := seatState(t, inv, 1, "A3"); got != SeatFree {
		t.Fatalf("A3 = %s, want FREE", got)
	}
}

func TestCreateHoldValidation(t *testing.T) {
	t.Parallel()
	_, m := newTestManager(t, "A1")

	if _, err := m.CreateHold(1, 10, nil, time.Minute); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty seats, got %v", err)
	}
	if _, err := m.CreateHold(0, 10, []string{"A1"}, time.Minute); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for zero show, got %v", err)
	}
	if _, err := m.CreateHold(9, 10, []string{"A1"}, time.Minute); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound, got %v", err)
	}
	var unknown *UnknownSeatError
	if _, err := m.CreateHold(1, 10, []string{"B9"}, time.Minute); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSeatError, got %v", err)
	}
}

func TestOverlappingHoldRejectedNamingSeats(t *testing.T) {
	t.Parallel()
	inv, m := newTestManager(t, "A1", "A2", "A3")

	if _, err := m.CreateHold(1, 10, []string{"A1", "A2"}, time.Minute); err != nil {
		t.Fatalf("first hold: %v", err)
	}
	_, err := m.CreateHold(1, 20, []string{"A2", "A3"}, time.Minute)
	var unavail *SeatUnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if len(unavail.Seats) != 1 || unavail.Seats[0] != "A2" {
		t.Fatalf("expected A2 named, got %v", unavail.Seats)
	}
	// The loser's untouched seat stays FREE.
	if got := seatState(t, inv, 1, "A3"); got != SeatFree {
		t.Fatalf("A3 = %s, want FREE", got)
	}
}

func TestConcurrentHoldsExactlyOneWinner(t *testing.T) {
	t.Parallel()
	_, m := newTestManager(t, "A1", "A2", "A3")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = m.CreateHold(1, 10, []string{"A1", "A2"}, time.Minute)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = m.CreateHold(1, 20, []string{"A2", "A3"}, time.Minute)
	}()
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var unavail *SeatUnavailableError
		if !errors.As(err, &unavail) {
			t.Fatalf("loser got unexpected error kind: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestReleaseHoldIdempotent(t *testing.T) {
	t.Parallel()
	inv, m := newTestManager(t, "A1", "A2")

	h, err := m.CreateHold(1, 10, []string{"A1", "A2"}, time.Minute)
	if err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}
	released, err := m.ReleaseHold(h.ID, 10)
	if err != nil || !released {
		t.Fatalf("first release = (%v, %v), want (true, nil)", released, err)
	}
	if got := seatState(t, inv, 1, "A1"); got != SeatFree {
		t.Fatalf("A1 = %s, want FREE", got)
	}

	// Second release is a reported no-op and must not double-free.
	released, err = m.ReleaseHold(h.ID, 10)
	if err != nil || released {
		t.Fatalf("second release = (%v, %v), want (false, nil)", released, err)
	}
	if _, avail, _ := inv.Availability(1); avail != 2 {
		t.Fatalf("available = %d after double release, want 2", avail)
	}
}

func TestReleaseHoldOwnership(t *testing.T) {
	t.Parallel()
	_, m := newTestManager(t, "A1")

	h, err := m.CreateHold(1, 10, []string{"A1"}, time.Minute)
	if err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}
	if _, err := m.ReleaseHold(h.ID, 99); !errors.Is(err, ErrHoldOwnership) {
		t.Fatalf("expected ErrHoldOwnership, got %v", err)
	}
	if _, err := m.ReleaseHold("no-such-hold", 10); !errors.Is(err, ErrHoldNotFound) {
		t.Fatalf("expected ErrHoldNotFound, got %v", err)
	}
}

func TestLazyExpiryWithoutSweep(t *testing.T) {
	t.Parallel()
	inv, m := newTestManager(t, "A3")

	// ttl=0: the hold is expired the moment it is read back.
	h, err := m.CreateHold(1, 10, []string{"A3"}, 0)
	if err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}
	got, err := m.Get(h.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.State != HoldExpired {
		t.Fatalf("state = %s, want EXPIRED", got.State)
	}
	// The seat was lazily freed even though no sweep ran.
	if st := seatState(t, inv, 1, "A3"); st != SeatFree {
		t.Fatalf("A3 = %s, want FREE", st)
	}
}

func TestExpireSweep(t *testing.T) {
	t.Parallel()
	inv, m := newTestManager(t, "A1", "A2", "A3")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	m.now = func() time.Time { return now }

	if _, err := m.CreateHold(1, 10, []string{"A1", "A2"}, time.Minute); err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}
	if _, err := m.CreateHold(1, 20, []string{"A3"}, time.Hour); err != nil {
		t.Fatalf("CreateHold() error: %v", err)
	}

	if n := m.ExpireSweep(base.Add(30 * time.Second)); n != 0 {
		t.Fatalf("premature sweep expired %d holds", n)
	}
	if n := m.ExpireSweep(base.Add(2 * time.Minute)); n != 1 {
		t.Fatalf("sweep expired %d holds, want 1", n)
	}
	if st := seatState(t, inv, 1, "A1"); st != SeatFree {
		t.Fatalf("A1 = %s after sweep, want FREE", st)
	}
	if st := seatState(t, inv, 1, "A3"); st != SeatHeld {
		t.Fatalf("A3 = %s after sweep, want HELD", st)
	}
}
