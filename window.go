package folio

import "fmt"

// Window is a named date range whose boundaries are computed relative to a
// reference day (usually today). Windows scope performance and return
// calculations.
type Window int

const (
	// Inception covers the whole available history.
	Inception Window = iota
	// PriorYear covers the previous calendar year.
	PriorYear
	// YearToDate covers the current calendar year. Its To boundary is
	// December 31st even when that day is in the future, so that
	// partial-year annualization uses the full year as denominator.
	YearToDate
	Week1
	Month1
	Months3
	Months6
	Year1
	Years3
	Years5
)

// Windows lists every named window, in display order.
func Windows() []Window {
	return []Window{Inception, PriorYear, YearToDate, Week1, Month1, Months3, Months6, Year1, Years3, Years5}
}

func (w Window) String() string {
	switch w {
	case Inception:
		return "inception"
	case PriorYear:
		return "prior-calendar-year"
	case YearToDate:
		return "year-to-date"
	case Week1:
		return "1week"
	case Month1:
		return "1month"
	case Months3:
		return "3months"
	case Months6:
		return "6months"
	case Year1:
		return "1year"
	case Years3:
		return "3years"
	case Years5:
		return "5years"
	default:
		return "unknown"
	}
}

// ParseWindow parses a window name as used by the price provider.
func ParseWindow(s string) (Window, error) {
	for _, w := range Windows() {
		if w.String() == s {
			return w, nil
		}
	}
	return Inception, fmt.Errorf("unknown window %q", s)
}

// RangeOn returns the window's date range relative to the given reference
// day. Trailing windows use fixed day counts (30 days for a month, 91 for a
// quarter, 184 for a half) and calendar years for 1y/3y/5y.
func (w Window) RangeOn(today Date) Range {
	switch w {
	case Inception:
		return Range{From: Date{}, To: today}
	case PriorYear:
		prior := today.AddYear(-1)
		return Range{From: prior.StartOfYear(), To: prior.EndOfYear()}
	case YearToDate:
		return Range{From: today.StartOfYear(), To: today.EndOfYear()}
	case Week1:
		return NewRange(today.Add(-7), today)
	case Month1:
		return NewRange(today.Add(-30), today)
	case Months3:
		return NewRange(today.Add(-91), today)
	case Months6:
		return NewRange(today.Add(-184), today)
	case Year1:
		return NewRange(today.AddYear(-1), today)
	case Years3:
		return NewRange(today.AddYear(-3), today)
	case Years5:
		return NewRange(today.AddYear(-5), today)
	default:
		panic("unknown window")
	}
}

// Range returns the window's date range relative to today.
func (w Window) Range() Range { return w.RangeOn(Today()) }
