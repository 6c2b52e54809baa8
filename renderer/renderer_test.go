package renderer

import (
	"strings"
	"testing"

	"github.com/boursier/folio"
	"github.com/shopspring/decimal"
)

func summaryFixture() ([]folio.AssetSummary, folio.PortfolioSummary) {
	assets := []folio.AssetSummary{
		{
			ISIN:       "FR0000120073",
			Name:       "Air Liquide",
			Class:      "stock",
			Currency:   "EUR",
			Quantity:   folio.Q(65),
			Latest:     folio.M(150.0, "EUR"),
			Valuation:  folio.M(9750.0, "EUR"),
			Invested:   folio.M(8542.50, "EUR"),
			Dividends:  folio.M(257.50, "EUR"),
			Gain:       folio.M(1207.50, "EUR"),
			GainPct:    folio.NewReturn(14.13),
			Proportion: 100,
			IRR:        map[folio.Window]folio.Return{folio.Inception: folio.NewReturn(9.8)},
			Perf:       map[folio.Window]folio.Return{folio.Inception: folio.NewReturn(15.4)},
		},
	}
	portfolio := folio.PortfolioSummary{
		Lines:     1,
		Currency:  "EUR",
		Valuation: folio.M(9750.0, "EUR"),
		Invested:  folio.M(8542.50, "EUR"),
		Dividends: folio.M(257.50, "EUR"),
		Gain:      folio.M(1207.50, "EUR"),
		GainPct:   folio.NewReturn(14.13),
		IRR:       map[folio.Window]folio.Return{folio.Inception: folio.NewReturn(9.8)},
	}
	return assets, portfolio
}

func TestSummaryMarkdown(t *testing.T) {
	assets, portfolio := summaryFixture()
	got := SummaryMarkdown(assets, portfolio, folio.MustParse("2024-06-15"))

	for _, want := range []string{
		"# Portfolio Summary on 2024-06-15",
		"Air Liquide",
		"FR0000120073",
		"## Totals",
		"Lines: 1",
		"## Money Weighted Returns",
		"9.80%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary is missing %q:\n%s", want, got)
		}
	}
	// Windows without a computable rate still render, as n/a.
	if !strings.Contains(got, "n/a") {
		t.Errorf("summary should render missing rates as n/a:\n%s", got)
	}
}

func TestSummaryMarkdownEmpty(t *testing.T) {
	got := SummaryMarkdown(nil, folio.PortfolioSummary{}, folio.MustParse("2024-06-15"))
	if !strings.Contains(got, "Nothing held") {
		t.Errorf("empty summary should say so:\n%s", got)
	}
}

func TestLogMarkdown(t *testing.T) {
	book := folio.NewBook()
	book.Append(
		folio.NewBuy(folio.MustParse("2024-03-21"), "Air Liquide", "FR0000120073", folio.Q(10), decimal.NewFromInt(160)),
		folio.NewSplit(folio.MustParse("2023-10-02"), "Réserve Ecureuil", "FR0010177378", 2, 1),
	)

	got := LogMarkdown(book)
	for _, want := range []string{
		"# Operation Log",
		"| 1 | 2023-10-02 | Split | Réserve Ecureuil | FR0010177378 |  | 2:1 |  |",
		"| 2 | 2024-03-21 | Buy | Air Liquide | FR0000120073 | 10 | 160 |  |",
		"2 operations.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log is missing %q:\n%s", want, got)
		}
	}
}

func TestLogMarkdownEmpty(t *testing.T) {
	got := LogMarkdown(folio.NewBook())
	if !strings.Contains(got, "The log is empty.") {
		t.Errorf("empty log should say so:\n%s", got)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	h := &folio.History[float64]{}
	h.Append(folio.MustParse("2024-01-01"), 100)
	h.Append(folio.MustParse("2024-01-02"), 110.5)

	got := HistoryMarkdown("Portfolio Valuation", h, 30)
	for _, want := range []string{"# Portfolio Valuation", "2024-01-01", "100.00", "110.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("history is missing %q:\n%s", want, got)
		}
	}

	if got := HistoryMarkdown("Empty", nil, 30); !strings.Contains(got, "No data.") {
		t.Errorf("empty history should say so:\n%s", got)
	}
}
