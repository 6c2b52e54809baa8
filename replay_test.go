package folio

import "testing"

func TestBookPosition(t *testing.T) {
	book := scenarioBook(t)

	testCases := []struct {
		name          string
		isin          string
		asOf          string
		wantHeld      string
		wantDividends string
	}{
		{name: "tracker after first buy", isin: trackerISIN, asOf: "2023-01-10", wantHeld: "100", wantDividends: "0"},
		{name: "tracker mid history", isin: trackerISIN, asOf: "2023-06-30", wantHeld: "200", wantDividends: "0"},
		{name: "tracker final", isin: trackerISIN, asOf: "2024-12-31", wantHeld: "200", wantDividends: "0"},
		{name: "stock before first dividend", isin: stockISIN, asOf: "2023-05-29", wantHeld: "70", wantDividends: "0"},
		{name: "stock after first dividend", isin: stockISIN, asOf: "2023-05-30", wantHeld: "70", wantDividends: "192.5"},
		{name: "stock final", isin: stockISIN, asOf: "2024-12-31", wantHeld: "65", wantDividends: "257.5"},
		{name: "fund after split", isin: opcvmISIN, asOf: "2023-10-02", wantHeld: "66", wantDividends: "0"},
		{name: "fund final", isin: opcvmISIN, asOf: "2024-12-31", wantHeld: "67", wantDividends: "64.99"},
		{name: "before any operation", isin: trackerISIN, asOf: "2022-12-31", wantHeld: "0", wantDividends: "0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos := book.Position(tc.isin, d(tc.asOf))
			if !pos.Held.Equal(Q(dec(tc.wantHeld))) {
				t.Errorf("Held = %s, want %s", pos.Held, tc.wantHeld)
			}
			if !pos.Dividends.Equal(dec(tc.wantDividends)) {
				t.Errorf("Dividends = %s, want %s", pos.Dividends, tc.wantDividends)
			}
		})
	}
}

func TestSplitRoundsDown(t *testing.T) {
	book := NewBook()
	book.Append(
		NewBuy(d("2024-01-01"), "X", "FR0000000001", Q(33), dec("10")),
		NewSplit(d("2024-02-01"), "X", "FR0000000001", 1, 2),
	)
	// 33 halved is 16.5, the position floors to 16 whole units.
	if got := book.HeldAsOf("FR0000000001", d("2024-02-01")); !got.Equal(Q(16)) {
		t.Errorf("held after 1:2 split = %s, want 16", got)
	}
}

func TestSplitOneForOneIsNoOp(t *testing.T) {
	book := NewBook()
	book.Append(
		NewBuy(d("2024-01-01"), "X", "FR0000000001", Q(42), dec("10")),
		NewSplit(d("2024-02-01"), "X", "FR0000000001", 1, 1),
	)
	if got := book.HeldAsOf("FR0000000001", d("2024-02-01")); !got.Equal(Q(42)) {
		t.Errorf("held after 1:1 split = %s, want 42", got)
	}
}

func TestDividendBeforeAnyHolding(t *testing.T) {
	book := NewBook()
	book.Append(
		NewDividend(d("2024-01-01"), "X", "FR0000000001", dec("2")),
		NewBuy(d("2024-02-01"), "X", "FR0000000001", Q(10), dec("10")),
	)
	// Nothing held when the dividend lands, nothing accrues.
	pos := book.Position("FR0000000001", d("2024-12-31"))
	if !pos.Dividends.IsZero() {
		t.Errorf("Dividends = %s, want 0", pos.Dividends)
	}
}

func TestPositionTrace(t *testing.T) {
	book := scenarioBook(t)
	pos := book.Position(opcvmISIN, d("2024-12-31"))

	if len(pos.Trace) != 4 {
		t.Fatalf("trace has %d points, want 4", len(pos.Trace))
	}
	wantHeld := []string{"33", "66", "67", "67"}
	for i, point := range pos.Trace {
		if !point.Held.Equal(Q(dec(wantHeld[i]))) {
			t.Errorf("trace[%d] held = %s, want %s", i, point.Held, wantHeld[i])
		}
	}
	if pos.Trace[1].Kind != Split {
		t.Errorf("trace[1] kind = %s, want Split", pos.Trace[1].Kind)
	}
}
