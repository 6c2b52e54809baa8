package folio

// AssetValues builds the daily valuation series of one instrument: the
// step function of held quantities joined with the forward filled price
// series, held times price per day. The series starts at the instrument's
// first operation, whatever the price history covers before that.
func (b *Book) AssetValues(isin string, prices *History[float64], through Date) *History[float64] {
	inception, ok := b.InceptionDate(isin)
	if !ok || prices.Len() == 0 {
		return &History[float64]{}
	}

	held := &History[float64]{}
	for _, point := range b.Position(isin, through).Trace {
		// Append keeps the last point of a day, the quantity the day
		// ends with.
		held.Append(point.Date, point.Held.AsFloat())
	}

	values := &History[float64]{}
	for on, price := range prices.ForwardFill(through).Values() {
		if on.Before(inception) || on.After(through) {
			continue
		}
		quantity, ok := held.ValueAsOf(on)
		if !ok {
			continue
		}
		values.Append(on, quantity*price)
	}
	return values
}

// CombinedValues sums per instrument valuation series into a portfolio
// series. Dates carried by only some instruments still contribute what
// those instruments are worth there.
func CombinedValues(series ...*History[float64]) *History[float64] {
	combined := &History[float64]{}
	for _, s := range series {
		for on, value := range s.Values() {
			combined.AppendAdd(on, value)
		}
	}
	return combined
}
