package folio

import "github.com/shopspring/decimal"

// TracePoint records the state of a position right after one operation was
// applied.
type TracePoint struct {
	Date     Date
	Kind     Kind
	Quantity Quantity // the operation's own quantity, zero for splits and dividends
	Value    decimal.Decimal
	Fees     decimal.Decimal
	Held     Quantity // position after the operation
}

// Position is the state of one instrument obtained by replaying its
// operations in order.
type Position struct {
	ISIN      string
	Held      Quantity
	Dividends decimal.Decimal // cash accrued from dividends, held quantity times per-unit value
	Trace     []TracePoint
}

// Position replays all operations for the given instrument up to and
// including asOf, and returns the resulting position. Replay follows the
// sorted order of the book:
//
//   - Buy adds the quantity, Sell subtracts it.
//   - Split rescales the held quantity by its ratio, rounding down to a
//     whole number of units.
//   - Dividend leaves the quantity untouched and accrues held times the
//     per-unit value, using the quantity held before the dividend.
func (b *Book) Position(isin string, asOf Date) Position {
	pos := Position{ISIN: isin}
	for _, op := range b.Operations(ByISIN(isin)) {
		if op.Date.After(asOf) {
			break
		}
		switch op.Kind {
		case Buy:
			pos.Held = pos.Held.Add(op.Quantity)
		case Sell:
			pos.Held = pos.Held.Sub(op.Quantity)
		case Split:
			pos.Held = pos.Held.Mul(op.Ratio()).Floor()
		case Dividend:
			pos.Dividends = pos.Dividends.Add(pos.Held.value.Mul(op.Value))
		}
		pos.Trace = append(pos.Trace, TracePoint{
			Date:     op.Date,
			Kind:     op.Kind,
			Quantity: op.Quantity,
			Value:    op.Value,
			Fees:     op.Fees,
			Held:     pos.Held,
		})
	}
	return pos
}

// HeldAsOf returns the quantity of an instrument held at end of day asOf.
func (b *Book) HeldAsOf(isin string, asOf Date) Quantity {
	return b.Position(isin, asOf).Held
}
