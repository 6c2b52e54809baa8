package renderer

import (
	"bytes"
	"fmt"

	"github.com/boursier/folio"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the portfolio summary report: one table row per
// retained instrument, a totals section, and the money weighted returns
// per window.
func SummaryMarkdown(assets []folio.AssetSummary, portfolio folio.PortfolioSummary, on folio.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", on))

	if len(assets) == 0 {
		doc.PlainText("Nothing held. Record a buy to get started.")
		return doc.String()
	}

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{
			a.Name,
			a.ISIN,
			a.Quantity.String(),
			a.Latest.String(),
			a.DailyChange.SignedString(),
			a.Valuation.String(),
			a.Proportion.String(),
			a.Gain.SignedString(),
			a.IRR[folio.Inception].String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "ISIN", "Quantity", "Latest", "Day", "Valuation", "Share", "Gain", "IRR"},
		Rows:   rows,
	})

	doc.H2("Totals")
	doc.PlainText(fmt.Sprintf("Lines: %d", portfolio.Lines))
	doc.PlainText(fmt.Sprintf("Valuation: %s", portfolio.Valuation))
	doc.PlainText(fmt.Sprintf("Invested: %s", portfolio.Invested))
	doc.PlainText(fmt.Sprintf("Dividends: %s", portfolio.Dividends))
	doc.PlainText(fmt.Sprintf("Gain: %s (%s)", portfolio.Gain.SignedString(), portfolio.GainPct))

	doc.H2("Money Weighted Returns")
	irr := make([][]string, 0, len(folio.Windows()))
	for _, w := range folio.Windows() {
		irr = append(irr, []string{w.String(), portfolio.IRR[w].String()})
	}
	doc.Table(md.TableSet{Header: []string{"Window", "Annual Return"}, Rows: irr})

	return doc.String()
}

// AssetMarkdown renders the detail report of a single instrument.
func AssetMarkdown(a folio.AssetSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", a.Name, a.ISIN))
	doc.PlainText(fmt.Sprintf("%s %s, last traded %s at %s (%s today)",
		a.Quantity, a.Class, a.TradeDate, a.Latest, a.DailyChange.SignedString()))

	doc.H2("Position")
	doc.Table(md.TableSet{
		Header: []string{"Valuation", "Invested", "Dividends", "Gain"},
		Rows: [][]string{{
			a.Valuation.String(),
			a.Invested.String(),
			a.Dividends.String(),
			fmt.Sprintf("%s (%s)", a.Gain.SignedString(), a.GainPct),
		}},
	})

	doc.H2("Returns")
	rows := make([][]string, 0, len(folio.Windows()))
	for _, w := range folio.Windows() {
		rows = append(rows, []string{w.String(), a.Perf[w].String(), a.IRR[w].String()})
	}
	doc.Table(md.TableSet{Header: []string{"Window", "Price Move", "Annual Return"}, Rows: rows})

	return doc.String()
}
