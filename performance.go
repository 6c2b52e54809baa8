package folio

// SeriesPerformance returns the percentage move between the first and last
// points of a price series. With fewer than two points, or a zero opening
// price, there is nothing to measure and the result is not computable.
func SeriesPerformance(h *History[float64]) Return {
	if h == nil || h.Len() < 2 {
		return NotComputable()
	}
	_, first := h.First()
	_, last := h.Latest()
	if first == 0 {
		return NotComputable()
	}
	return NewReturn(Percent(100 * (last/first - 1)))
}
