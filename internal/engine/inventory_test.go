package engine

import (
	"errors"
	"sync"
	"testing"
)

func testLayout(codes ...string) []SeatSpec {
	specs := make([]SeatSpec, 0, len(codes))
	for _, c := range codes {
		specs = append(specs, SeatSpec{Code: c, Tier: TierRegular})
	}
	return specs
}

func testPricing() TierPricing {
	return TierPricing{RegularCents: 25000, PremiumCents: 40000}
}

func newTestInventory(t *testing.T, showID uint64, layout []SeatSpec) *Inventory {
	t.Helper()
	inv := NewInventory()
	if err := inv.Initialize(showID, layout, testPricing()); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return inv
}

func TestInitializeDuplicateShow(t *testing.T) {
	t.Parallel()
	inv := newTestInventory(t, 1, testLayout("A1", "A2"))
	if err := inv.Initialize(1, testLayout("A1"), testPricing()); !errors.Is(err, ErrDuplicateShow) {
		t.Fatalf("expected ErrDuplicateShow, got %v", err)
	}
}

func TestInitializeRejectsBadLayout(t *testing.T) {
	t.Parallel()
	inv := NewInventory()
	if err := inv.Initialize(1, nil, testPricing()); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty layout, got %v", err)
	}
	if err := inv.Initialize(1, testLayout("A1", "A1"), testPricing()); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for duplicate codes, got %v", err)
	}
	if err := inv.Initialize(0, testLayout("A1"), testPricing()); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for zero show id, got %v", err)
	}
}

func TestQuerySeatsUnknownCode(t *testing.T) {
	t.Parallel()
	inv := newTestInventory(t, 1, testLayout("A1", "A2"))
	_, err := inv.QuerySeats(1, []string{"A1", "Z9"})
	var unknown *UnknownSeatError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSeatError, got %v", err)
	}
	if len(unknown.Seats) != 1 || unknown.Seats[0] != "Z9" {
		t.Fatalf("expected Z9 reported, got %v", unknown.Seats)
	}
	if _, err := inv.QuerySeats(2, []string{"A1"}); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound, got %v", err)
	}
}

func TestGroupTransitionAllOrNothing(t *testing.T) {
	t.Parallel()
	inv := newTestInventory(t, 1, testLayout("A1", "A2", "A3"))

	if err := inv.Transition(1, []string{"A1"}, SeatFree, SeatHeld); err != nil {
		t.Fatalf("Transition() error: %v", err)
	}

	// A1 is HELD now, so holding {A1,A2,A3} must fail naming A1 and
	// must leave A2/A3 untouched.
	err := inv.Transition(1, []string{"A1", "A2", "A3"}, SeatFree, SeatHeld)
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if len(conflict.Seats) != 1 || conflict.Seats[0] != "A1" {
		t.Fatalf("expected conflict on A1, got %v", conflict.Seats)
	}
	states, err := inv.QuerySeats(1, []string{"A2", "A3"})
	if err != nil {
		t.Fatalf("QuerySeats() error: %v", err)
	}
	for _, st := range states {
		if st.State != SeatFree {
			t.Fatalf("seat %s mutated by failed group transition: %s", st.Code, st.State)
		}
	}
}

func TestAvailabilityArithmetic(t *testing.T) {
	t.Parallel()
	inv := newTestInventory(t, 1, testLayout("A1", "A2", "A3", "A4"))

	check := func(wantAvail int) {
		t.Helper()
		total, avail, err := inv.Availability(1)
		if err != nil {
			t.Fatalf("Availability() error: %v", err)
		}
		if total != 4 || avail != wantAvail {
			t.Fatalf("availability = %d/%d, want %d/4", avail, total, wantAvail)
		}
	}

	check(4)
	if err := inv.Transition(1, []string{"A1", "A2"}, SeatFree, SeatHeld); err != nil {
		t.Fatalf("hold transition: %v", err)
	}
	check(2)
	if err := inv.Transition(1, []string{"A1", "A2"}, SeatHeld, SeatBooked); err != nil {
		t.Fatalf("book transition: %v", err)
	}
	check(2)
	if err := inv.Transition(1, []string{"A3"}, SeatFree, SeatHeld); err != nil {
		t.Fatalf("hold transition: %v", err)
	}
	check(1)
	if err := inv.Transition(1, []string{"A3"}, SeatHeld, SeatFree); err != nil {
		t.Fatalf("release transition: %v", err)
	}
	check(2)
}

func TestPriceSeatsUsesTier(t *testing.T) {
	t.Parallel()
	inv := NewInventory()
	layout := []SeatSpec{
		{Code: "A1", Tier: TierRegular},
		{Code: "P1", Tier: TierPremium},
	}
	if err := inv.Initialize(7, layout, testPricing()); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	prices, total, err := inv.PriceSeats(7, []string{"A1", "P1"})
	if err != nil {
		t.Fatalf("PriceSeats() error: %v", err)
	}
	if prices["A1"] != 25000 || prices["P1"] != 40000 {
		t.Fatalf("unexpected per-seat prices: %v", prices)
	}
	if total != 65000 {
		t.Fatalf("total = %d, want 65000", total)
	}
}

func TestConcurrentOverlappingTransitions(t *testing.T) {
	t.Parallel()
	inv := newTestInventory(t, 1, testLayout("A1", "A2", "A3"))

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- inv.Transition(1, []string{"A1", "A2"}, SeatFree, SeatHeld)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var conflict *SeatConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning transition, got %d", wins)
	}
	if _, avail, _ := inv.Availability(1); avail != 1 {
		t.Fatalf("available = %d, want 1", avail)
	}
}
