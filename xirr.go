package folio

import "math"

// Xirr solves the money weighted annual return of a cash flow schedule,
// the rate r such that the net present value
//
//	sum of flow_i / (1+r)^(days_i/365)
//
// is zero, with days_i counted from the first flow.
//
// A schedule with fewer than two flows, or whose flows all move the same
// way, has no meaningful rate and yields a not computable Return. So does
// a schedule the solver cannot converge on, which happens on degenerate
// ledgers, never on real ones.
func Xirr(flows []CashFlow) Return {
	if len(flows) < 2 {
		return NotComputable()
	}
	negative, positive := false, false
	for _, flow := range flows {
		if flow.Amount < 0 {
			negative = true
		}
		if flow.Amount > 0 {
			positive = true
		}
	}
	if !negative || !positive {
		return NotComputable()
	}

	// Schedule years from the first flow, actual/365.
	first := flows[0].Date
	years := make([]float64, len(flows))
	amounts := make([]float64, len(flows))
	for i, flow := range flows {
		years[i] = float64(flow.Date.Sub(first)) / 365
		amounts[i] = flow.Amount
	}
	if years[len(years)-1] == 0 {
		// All flows on one day, no time for money to grow.
		return NotComputable()
	}

	npv := func(rate float64) float64 {
		var sum float64
		for i := range amounts {
			sum += amounts[i] / math.Pow(1+rate, years[i])
		}
		return sum
	}
	dnpv := func(rate float64) float64 {
		var sum float64
		for i := range amounts {
			if years[i] == 0 {
				continue
			}
			sum -= years[i] * amounts[i] / math.Pow(1+rate, years[i]+1)
		}
		return sum
	}

	if rate, ok := newton(npv, dnpv, 0.1); ok {
		return NewReturn(Percent(100 * rate))
	}
	if rate, ok := bisect(npv); ok {
		return NewReturn(Percent(100 * rate))
	}
	return NotComputable()
}

const xirrTolerance = 1e-9

// newton runs a plain Newton iteration from the given guess.
func newton(f, df func(float64) float64, guess float64) (float64, bool) {
	rate := guess
	for i := 0; i < 100; i++ {
		value := f(rate)
		if math.Abs(value) < xirrTolerance {
			return rate, true
		}
		slope := df(rate)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return 0, false
		}
		next := rate - value/slope
		if next <= -1 {
			// Rates below a total loss make (1+r)^t meaningless.
			return 0, false
		}
		if math.Abs(next-rate) < xirrTolerance {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// bisect brackets the root between a total loss and an expanding upper
// bound, then halves in. Slower than Newton but immune to bad slopes.
func bisect(f func(float64) float64) (float64, bool) {
	lo, hi := -1+1e-6, 10.0
	flo := f(lo)
	for f(hi)*flo > 0 {
		hi *= 2
		if hi > 1e6 {
			return 0, false
		}
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		value := f(mid)
		if math.Abs(value) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if value*flo > 0 {
			lo, flo = mid, value
		} else {
			hi = mid
		}
	}
	return 0, false
}
