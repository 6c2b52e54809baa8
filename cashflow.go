package folio

import (
	"math"
	"sort"
)

// CashFlow is a dated movement of cash between the investor and the
// portfolio. Money leaving the investor's pocket is negative, money coming
// back is positive.
type CashFlow struct {
	Date   Date
	Amount float64
}

// CashFlows builds the cash flow schedule of one instrument over a window,
// the series a money weighted return is solved on.
//
// Operations inside the window contribute their own flow: a buy costs
// quantity times value plus fees, a sell pays quantity times value minus
// fees, a dividend pays the quantity held at that date times the per unit
// value. Splits move no cash.
//
// When the position predates the window, a synthetic opening flow buys the
// whole position back at the first quoted price of the window. The
// schedule always ends with a synthetic closing flow selling the position
// at the last quoted price of the window; for the year to date window that
// closing flow is dated December 31 of the current year, so partial years
// annualize like full ones.
func (b *Book) CashFlows(isin string, w Window, prices *History[float64], today Date) []CashFlow {
	r := w.RangeOn(today)
	var flows []CashFlow

	if !r.From.IsZero() {
		held := b.HeldAsOf(isin, r.From.Add(-1))
		if held.IsPositive() && prices.Len() > 0 {
			on, open := prices.First()
			flows = append(flows, CashFlow{Date: on, Amount: -held.AsFloat() * open})
		}
	}

	pos := b.Position(isin, r.To)
	for _, point := range pos.Trace {
		if !r.Contains(point.Date) {
			continue
		}
		var amount float64
		gross := point.Quantity.value.Mul(point.Value)
		switch point.Kind {
		case Buy:
			amount = -gross.Add(point.Fees).InexactFloat64()
		case Sell:
			amount = gross.Sub(point.Fees).InexactFloat64()
		case Dividend:
			amount = point.Held.value.Mul(point.Value).InexactFloat64()
		case Split:
			continue
		}
		flows = append(flows, CashFlow{Date: point.Date, Amount: amount})
	}
	if len(flows) == 0 {
		return nil
	}
	// The synthetic open is dated at the first quote, which can land after
	// an in-window operation on a non trading day. Restore chronological
	// order before closing the schedule.
	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })

	held := b.HeldAsOf(isin, r.To)
	if prices.Len() > 0 {
		on, last := prices.Latest()
		if w == YearToDate {
			// Close the year to date schedule on December 31 even
			// mid-year, so the solved annual rate is comparable
			// across windows.
			on = today.EndOfYear()
		}
		flows = append(flows, CashFlow{Date: on, Amount: held.AsFloat() * last})
	}
	return flows
}

// CombineCashFlows pools per instrument schedules into one portfolio
// schedule, summing flows that land on the same date.
func CombineCashFlows(schedules ...[]CashFlow) []CashFlow {
	byDate := make(map[Date]float64)
	for _, schedule := range schedules {
		for _, flow := range schedule {
			byDate[flow.Date] += flow.Amount
		}
	}
	combined := make([]CashFlow, 0, len(byDate))
	for on, amount := range byDate {
		combined = append(combined, CashFlow{Date: on, Amount: amount})
	}
	sort.Slice(combined, func(i, j int) bool { return combined[i].Date.Before(combined[j].Date) })
	return combined
}

// InvestedCapital returns the net capital the investor has put in over a
// schedule, the negated sum of every flow but the terminal close, rounded
// to the cent.
func InvestedCapital(flows []CashFlow) float64 {
	if len(flows) == 0 {
		return 0
	}
	var sum float64
	for _, flow := range flows[:len(flows)-1] {
		sum += flow.Amount
	}
	return math.Round(-sum*100) / 100
}
