package renderer

import (
	"bytes"
	"fmt"

	"github.com/boursier/folio"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders a valuation series as a markdown table, one row
// per sampled date. Long series are thinned to roughly maxRows evenly
// spaced rows, the last date is always kept.
func HistoryMarkdown(title string, h *folio.History[float64], maxRows int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if h == nil || h.Len() == 0 {
		doc.PlainText("No data.")
		return doc.String()
	}

	step := 1
	if maxRows > 0 && h.Len() > maxRows {
		step = h.Len() / maxRows
	}

	var rows [][]string
	i := 0
	var lastDay folio.Date
	var lastValue float64
	for on, value := range h.Values() {
		lastDay, lastValue = on, value
		if i%step == 0 {
			rows = append(rows, []string{on.String(), fmt.Sprintf("%.2f", value)})
		}
		i++
	}
	if last := rows[len(rows)-1]; last[0] != lastDay.String() {
		rows = append(rows, []string{lastDay.String(), fmt.Sprintf("%.2f", lastValue)})
	}

	doc.Table(md.TableSet{Header: []string{"Date", "Value"}, Rows: rows})
	return doc.String()
}
