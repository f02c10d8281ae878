package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(nil, time.Minute)
	layout := []SeatSpec{
		{Code: "A1", Tier: TierRegular},
		{Code: "A2", Tier: TierRegular},
		{Code: "A3", Tier: TierPremium},
	}
	if err := svc.InitializeShow(1, layout, testPricing()); err != nil {
		t.Fatalf("InitializeShow() error: %v", err)
	}
	return svc
}

func TestServiceValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	user := Requester{ID: 10}

	if _, err := svc.Hold(1, user, nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty seat list: got %v", err)
	}
	if _, err := svc.Hold(0, user, []string{"A1"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("zero show id: got %v", err)
	}
	if _, err := svc.Confirm(context.Background(), "", user); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty hold id: got %v", err)
	}
	if _, err := svc.Release("", user); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty hold id on release: got %v", err)
	}
}

// TestReservationFlow walks the full scenario: U1 holds {A1,A2}, U2 races
// for {A2,A3} and loses with A2 named, U1 confirms before expiry and ends
// up with a booking, after which A1 is no longer holdable.
func TestReservationFlow(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	u1 := Requester{ID: 1, Email: "u1@test.com"}
	u2 := Requester{ID: 2, Email: "u2@test.com"}

	h1, err := svc.Hold(1, u1, []string{"A1", "A2"})
	if err != nil {
		t.Fatalf("Hold() error: %v", err)
	}
	if h1.State != HoldActive {
		t.Fatalf("h1 state = %s, want ACTIVE", h1.State)
	}

	_, err = svc.Hold(1, u2, []string{"A2", "A3"})
	var unavail *SeatUnavailableError
	if !errors.As(err, &unavail) || len(unavail.Seats) != 1 || unavail.Seats[0] != "A2" {
		t.Fatalf("expected SeatUnavailableError naming A2, got %v", err)
	}

	seats, err := svc.Seats(1)
	if err != nil {
		t.Fatalf("Seats() error: %v", err)
	}
	want := map[string]SeatState{"A1": SeatHeld, "A2": SeatHeld, "A3": SeatFree}
	for _, st := range seats {
		if st.State != want[st.Code] {
			t.Fatalf("seat %s = %s, want %s", st.Code, st.State, want[st.Code])
		}
	}

	b, err := svc.Confirm(context.Background(), h1.ID, u1)
	if err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}
	if b.TotalCents != 2*25000 {
		t.Fatalf("total = %d, want 50000", b.TotalCents)
	}

	if _, err := svc.Hold(1, u2, []string{"A1"}); !errors.As(err, &unavail) {
		t.Fatalf("expected SeatUnavailableError on booked A1, got %v", err)
	}

	total, avail, err := svc.Availability(1)
	if err != nil || total != 3 || avail != 1 {
		t.Fatalf("availability = %d/%d (%v), want 1/3", avail, total, err)
	}
}

func TestServiceReleaseAndRehold(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	u1 := Requester{ID: 1}
	u2 := Requester{ID: 2}

	h, err := svc.Hold(1, u1, []string{"A3"})
	if err != nil {
		t.Fatalf("Hold() error: %v", err)
	}
	if released, err := svc.Release(h.ID, u1); err != nil || !released {
		t.Fatalf("Release() = (%v, %v), want (true, nil)", released, err)
	}
	// Freed seat is immediately holdable by someone else.
	if _, err := svc.Hold(1, u2, []string{"A3"}); err != nil {
		t.Fatalf("rehold after release: %v", err)
	}
}

func TestRestoreBooked(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	if err := svc.RestoreBooked(1, []string{"A1", "A3"}); err != nil {
		t.Fatalf("RestoreBooked() error: %v", err)
	}
	total, avail, err := svc.Availability(1)
	if err != nil || total != 3 || avail != 1 {
		t.Fatalf("availability = %d/%d (%v), want 1/3", avail, total, err)
	}
	var unavail *SeatUnavailableError
	if _, err := svc.Hold(1, Requester{ID: 1}, []string{"A1"}); !errors.As(err, &unavail) {
		t.Fatalf("expected restored seat to be unavailable, got %v", err)
	}
}
