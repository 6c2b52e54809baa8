package folio

import (
	"math"
	"testing"
)

func prices(points ...struct {
	day   string
	value float64
}) *History[float64] {
	h := &History[float64]{}
	for _, p := range points {
		h.Append(d(p.day), p.value)
	}
	return h
}

func pricePoint(day string, value float64) struct {
	day   string
	value float64
} {
	return struct {
		day   string
		value float64
	}{day, value}
}

func almost(got, want float64) bool { return math.Abs(got-want) < 1e-6 }

func TestCashFlowsInception(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	quotes := prices(pricePoint("2023-01-02", 80), pricePoint("2024-06-10", 100))

	flows := book.CashFlows(trackerISIN, Inception, quotes, today)

	wantAmounts := []float64{-5000, -10938, 2750, -3375, 2500, 20000}
	if len(flows) != len(wantAmounts) {
		t.Fatalf("got %d flows, want %d", len(flows), len(wantAmounts))
	}
	for i, want := range wantAmounts {
		if !almost(flows[i].Amount, want) {
			t.Errorf("flow %d = %.2f, want %.2f", i, flows[i].Amount, want)
		}
	}
	// The terminal flow sells the whole position at the last quote.
	if last := flows[len(flows)-1]; last.Date != d("2024-06-10") {
		t.Errorf("terminal flow on %s, want 2024-06-10", last.Date)
	}

	if got := InvestedCapital(flows); got != 14063.00 {
		t.Errorf("InvestedCapital = %.2f, want 14063.00", got)
	}
}

func TestCashFlowsSyntheticOpen(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	// One year window: [2023-06-15, 2024-06-15]. The tracker position
	// predates it, 250 units held, so the schedule opens with a synthetic
	// purchase at the window's first quote.
	quotes := prices(pricePoint("2023-06-15", 60), pricePoint("2024-06-10", 100))

	flows := book.CashFlows(trackerISIN, Year1, quotes, today)

	if len(flows) != 5 {
		t.Fatalf("got %d flows, want 5", len(flows))
	}
	open := flows[0]
	if open.Date != d("2023-06-15") {
		t.Errorf("open flow on %s, want 2023-06-15", open.Date)
	}
	if !almost(open.Amount, -250*60) {
		t.Errorf("open flow = %.2f, want %.2f", open.Amount, -250*60.0)
	}
	// Then the in-window operations and the terminal close.
	wantRest := []float64{2750, -3375, 2500, 20000}
	for i, want := range wantRest {
		if !almost(flows[i+1].Amount, want) {
			t.Errorf("flow %d = %.2f, want %.2f", i+1, flows[i+1].Amount, want)
		}
	}
}

func TestCashFlowsChronologicalWhenFirstQuoteLate(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	// One year window: [2023-06-15, 2024-06-15]. The first quote lands
	// after the june 20 sale, so the synthetic open is dated after an
	// in-window operation and the schedule must be reordered.
	quotes := prices(pricePoint("2023-06-25", 60), pricePoint("2024-06-10", 100))

	flows := book.CashFlows(trackerISIN, Year1, quotes, today)
	if len(flows) != 5 {
		t.Fatalf("got %d flows, want 5", len(flows))
	}
	for i := 1; i < len(flows); i++ {
		if flows[i].Date.Before(flows[i-1].Date) {
			t.Errorf("flow %d on %s precedes flow %d on %s", i, flows[i].Date, i-1, flows[i-1].Date)
		}
	}
	// The june 20 sale comes first, then the synthetic open.
	if !almost(flows[0].Amount, 2750) {
		t.Errorf("flow 0 = %.2f, want 2750", flows[0].Amount)
	}
	if flows[1].Date != d("2023-06-25") || !almost(flows[1].Amount, -250*60) {
		t.Errorf("flow 1 = %.2f on %s, want %.2f on 2023-06-25", flows[1].Amount, flows[1].Date, -250*60.0)
	}
	// The terminal close still sells the whole position at the last quote.
	if last := flows[len(flows)-1]; !almost(last.Amount, 200*100) {
		t.Errorf("terminal flow = %.2f, want %.2f", last.Amount, 200*100.0)
	}
}

func TestCashFlowsDividendInsideWindow(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	// Three months window: [2024-03-16, 2024-06-15]. The fund position
	// predates it and only the april dividend falls inside.
	quotes := prices(pricePoint("2024-03-18", 28), pricePoint("2024-06-10", 30))

	flows := book.CashFlows(opcvmISIN, Months3, quotes, today)
	if len(flows) != 3 {
		// open, the april dividend, close
		t.Fatalf("got %d flows, want 3", len(flows))
	}
	if !almost(flows[0].Amount, -67*28) {
		t.Errorf("open = %.2f, want %.2f", flows[0].Amount, -67*28.0)
	}
	if !almost(flows[1].Amount, 64.99) {
		t.Errorf("dividend flow = %.2f, want 64.99", flows[1].Amount)
	}
	if !almost(flows[2].Amount, 67*30) {
		t.Errorf("close = %.2f, want %.2f", flows[2].Amount, 67*30.0)
	}
}

func TestCashFlowsYearToDateClosesOnDec31(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	quotes := prices(pricePoint("2024-01-02", 90), pricePoint("2024-06-10", 100))

	flows := book.CashFlows(trackerISIN, YearToDate, quotes, today)
	if len(flows) == 0 {
		t.Fatal("want a schedule, got none")
	}
	last := flows[len(flows)-1]
	if last.Date != d("2024-12-31") {
		t.Errorf("year to date close on %s, want 2024-12-31", last.Date)
	}
	if !almost(last.Amount, 200*100) {
		t.Errorf("close = %.2f, want %.2f", last.Amount, 200*100.0)
	}
}

func TestCashFlowsEmptyWindow(t *testing.T) {
	book := scenarioBook(t)
	// A window long before the first operation.
	quotes := prices(pricePoint("2020-01-02", 10))
	flows := book.CashFlows(trackerISIN, PriorYear, quotes, d("2021-06-15"))
	if flows != nil {
		t.Errorf("want no schedule, got %v", flows)
	}
}

func TestCombineCashFlows(t *testing.T) {
	a := []CashFlow{{d("2024-01-01"), -100}, {d("2024-06-01"), 120}}
	b := []CashFlow{{d("2024-01-01"), -50}, {d("2024-03-01"), 5}, {d("2024-06-01"), 60}}

	combined := CombineCashFlows(a, b)
	if len(combined) != 3 {
		t.Fatalf("got %d flows, want 3", len(combined))
	}
	want := []CashFlow{{d("2024-01-01"), -150}, {d("2024-03-01"), 5}, {d("2024-06-01"), 180}}
	for i := range want {
		if combined[i].Date != want[i].Date || !almost(combined[i].Amount, want[i].Amount) {
			t.Errorf("flow %d = %+v, want %+v", i, combined[i], want[i])
		}
	}
}

func TestInvestedCapitalWholePortfolio(t *testing.T) {
	book := scenarioBook(t)
	today := d("2024-06-15")
	quotes := map[string]*History[float64]{
		trackerISIN: prices(pricePoint("2023-01-02", 80), pricePoint("2024-06-10", 100)),
		stockISIN:   prices(pricePoint("2023-01-02", 120), pricePoint("2024-06-10", 150)),
		opcvmISIN:   prices(pricePoint("2023-01-02", 25), pricePoint("2024-06-10", 30)),
	}

	var schedules [][]CashFlow
	for _, isin := range book.ISINs() {
		schedules = append(schedules, book.CashFlows(isin, Inception, quotes[isin], today))
	}
	combined := CombineCashFlows(schedules...)

	if got := InvestedCapital(combined); got != 24578.51 {
		t.Errorf("InvestedCapital = %.2f, want 24578.51", got)
	}
}
