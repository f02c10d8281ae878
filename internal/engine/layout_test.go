package engine

import "testing"

func TestGridLayoutRowsAndPartialLastRow(t *testing.T) {
	t.Parallel()

	specs := GridLayout(23, 0)
	if len(specs) != 23 {
		t.Fatalf("expected 23 seats, got %d", len(specs))
	}
	if specs[0].Code != "A1" || specs[9].Code != "A10" {
		t.Fatalf("unexpected first row codes: %s .. %s", specs[0].Code, specs[9].Code)
	}
	if specs[10].Code != "B1" {
		t.Fatalf("expected second row to start at B1, got %s", specs[10].Code)
	}
	if last := specs[22].Code; last != "C3" {
		t.Fatalf("expected partial last row to end at C3, got %s", last)
	}
	for _, s := range specs {
		if s.Tier != TierRegular {
			t.Fatalf("seat %s tiered %s with no premium rows", s.Code, s.Tier)
		}
	}
}

func TestGridLayoutPremiumRowsAreTrailing(t *testing.T) {
	t.Parallel()

	specs := GridLayout(30, 1)
	for _, s := range specs[:20] {
		if s.Tier != TierRegular {
			t.Fatalf("seat %s should be regular", s.Code)
		}
	}
	for _, s := range specs[20:] {
		if s.Tier != TierPremium {
			t.Fatalf("seat %s should be premium", s.Code)
		}
	}
}

func TestGridLayoutPremiumRowsExceedRowCount(t *testing.T) {
	t.Parallel()

	for _, s := range GridLayout(15, 5) {
		if s.Tier != TierPremium {
			t.Fatalf("seat %s should be premium when every row is premium", s.Code)
		}
	}
}

func TestGridLayoutZeroSeats(t *testing.T) {
	t.Parallel()

	if specs := GridLayout(0, 2); specs != nil {
		t.Fatalf("expected nil layout, got %d seats", len(specs))
	}
}

func TestRowLabelWrapsPastZ(t *testing.T) {
	t.Parallel()

	cases := []struct {
		row  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, c := range cases {
		if got := rowLabel(c.row); got != c.want {
			t.Fatalf("rowLabel(%d) = %q, want %q", c.row, got, c.want)
		}
	}
}

func TestGridLayoutFeedsInventory(t *testing.T) {
	t.Parallel()

	inv := NewInventory()
	layout := GridLayout(40, 2)
	if err := inv.Initialize(7, layout, testPricing()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	total, available, err := inv.Availability(7)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if total != 40 || available != 40 {
		t.Fatalf("expected 40/40, got %d/%d", available, total)
	}
}
