package folio

import "testing"

func TestWindowRangeOn(t *testing.T) {
	today := d("2024-06-15")

	testCases := []struct {
		window   Window
		wantFrom string
		wantTo   string
	}{
		{Inception, "", "2024-06-15"},
		{YearToDate, "2024-01-01", "2024-12-31"},
		{PriorYear, "2023-01-01", "2023-12-31"},
		{Week1, "2024-06-08", "2024-06-15"},
		{Month1, "2024-05-16", "2024-06-15"},
		{Months3, "2024-03-16", "2024-06-15"},
		{Months6, "2023-12-14", "2024-06-15"},
		{Year1, "2023-06-15", "2024-06-15"},
		{Years3, "2021-06-15", "2024-06-15"},
		{Years5, "2019-06-15", "2024-06-15"},
	}
	for _, tc := range testCases {
		r := tc.window.RangeOn(today)
		if tc.wantFrom == "" {
			if !r.From.IsZero() {
				t.Errorf("%s: From = %s, want open start", tc.window, r.From)
			}
		} else if r.From != d(tc.wantFrom) {
			t.Errorf("%s: From = %s, want %s", tc.window, r.From, tc.wantFrom)
		}
		if r.To != d(tc.wantTo) {
			t.Errorf("%s: To = %s, want %s", tc.window, r.To, tc.wantTo)
		}
	}
}

func TestParseWindow(t *testing.T) {
	for _, w := range Windows() {
		got, err := ParseWindow(w.String())
		if err != nil {
			t.Errorf("ParseWindow(%q) unexpected error: %v", w, err)
		}
		if got != w {
			t.Errorf("ParseWindow(%q) = %v, want %v", w, got, w)
		}
	}
	if _, err := ParseWindow("fortnight"); err == nil {
		t.Error("ParseWindow(\"fortnight\") should fail")
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(d("2024-01-01"), d("2024-12-31"))
	if !r.Contains(d("2024-06-15")) {
		t.Error("range should contain a date inside it")
	}
	if !r.Contains(d("2024-01-01")) || !r.Contains(d("2024-12-31")) {
		t.Error("range bounds are inclusive")
	}
	if r.Contains(d("2023-12-31")) || r.Contains(d("2025-01-01")) {
		t.Error("range should not contain dates outside it")
	}

	open := Range{To: d("2024-12-31")}
	if !open.Contains(d("1970-01-01")) {
		t.Error("a range with a zero From has an open start")
	}
}

func TestRangeDays(t *testing.T) {
	r := NewRange(d("2024-02-27"), d("2024-03-02"))
	var got []string
	for on := range r.Days() {
		got = append(got, on.String())
	}
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, got[i], want[i])
		}
	}
}
