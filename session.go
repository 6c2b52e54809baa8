package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetSummary is the analytics line of one instrument: identity, held
// position, valuation, and returns over every window.
type AssetSummary struct {
	ISIN        string
	Name        string
	Symbol      string
	Class       string
	Currency    string
	TradeDate   Date
	Quantity    Quantity
	Latest      Money
	DailyChange Percent
	Dividends   Money
	Invested    Money
	Valuation   Money
	Gain        Money
	GainPct     Return
	Proportion  Percent
	IRR         map[Window]Return // money weighted annual return per window
	Perf        map[Window]Return // raw price move per window
}

// PortfolioSummary aggregates the whole portfolio: pooled cash flows,
// summed valuations, and the money weighted return of the pool.
type PortfolioSummary struct {
	Lines     int
	Currency  string
	Valuation Money
	Dividends Money
	Invested  Money
	Gain      Money
	GainPct   Return
	IRR       map[Window]Return
}

// Session computes summaries, valuations, and returns over one operation
// log and one price provider.
//
// Every derived artifact is memoized under the book's content hash:
// asking twice costs nothing, and appending to the book transparently
// invalidates everything. The provider is wrapped with [Memoize], so a
// session hits it at most once per instrument however many artifacts it
// computes.
type Session struct {
	book     *Book
	provider PriceProvider
	today    Date

	// memoized artifacts, valid while hash matches the book
	hash      string
	assets    []AssetSummary
	portfolio PortfolioSummary
	hasValue  bool
	values    map[string]*History[float64]
	pooled    *History[float64]
}

// NewSession opens an analytics session on a book. The provider is probed
// for every instrument in the book upfront: a session either answers
// everything or fails now.
func NewSession(book *Book, provider PriceProvider) (*Session, error) {
	s := &Session{book: book, provider: Memoize(provider), today: Today()}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// AssetSummaries returns one summary per instrument still worth something,
// ordered by first appearance in the log. Instruments whose valuation is
// not positive, sold off or worthless, are dropped.
func (s *Session) AssetSummaries() ([]AssetSummary, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.assets, nil
}

// PortfolioSummary returns the aggregated portfolio line. The second
// result is false when the book holds nothing to aggregate.
func (s *Session) PortfolioSummary() (PortfolioSummary, bool, error) {
	if err := s.refresh(); err != nil {
		return PortfolioSummary{}, false, err
	}
	return s.portfolio, s.hasValue, nil
}

// AssetValues returns the daily valuation series of one instrument.
func (s *Session) AssetValues(isin string) (*History[float64], error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.values[isin], nil
}

// PortfolioValues returns the daily valuation series of the whole
// portfolio.
func (s *Session) PortfolioValues() (*History[float64], error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.pooled, nil
}

// refresh recomputes every artifact when the book changed since the last
// computation.
func (s *Session) refresh() error {
	hash := s.book.Hash()
	if hash == s.hash {
		return nil
	}

	assets := make([]AssetSummary, 0)
	values := make(map[string]*History[float64])
	schedules := make(map[Window][][]CashFlow)
	var series []*History[float64]

	for _, isin := range s.book.ISINs() {
		info, err := s.provider.Info(isin)
		if err != nil {
			return fmt.Errorf("market data unavailable for %q: %w", isin, err)
		}
		prices, err := s.provider.Prices(isin, Inception)
		if err != nil {
			return fmt.Errorf("price history unavailable for %q: %w", isin, err)
		}

		summary := s.summarize(isin, info, prices)
		if !summary.Valuation.IsPositive() {
			continue
		}
		assets = append(assets, summary)

		for _, w := range Windows() {
			flows := s.book.CashFlows(isin, w, prices.Slice(w.RangeOn(s.today)), s.today)
			if len(flows) > 0 {
				schedules[w] = append(schedules[w], flows)
			}
		}
		valueSeries := s.book.AssetValues(isin, prices, s.today)
		values[isin] = valueSeries
		series = append(series, valueSeries)
	}

	s.portfolio, s.hasValue = s.aggregate(assets, schedules)
	s.assets = assets
	s.values = values
	s.pooled = CombinedValues(series...)
	s.hash = hash
	return nil
}

// summarize builds the full analytics line of one instrument.
func (s *Session) summarize(isin string, info AssetInfo, prices *History[float64]) AssetSummary {
	pos := s.book.Position(isin, s.today)
	cur := info.Currency

	summary := AssetSummary{
		ISIN:        isin,
		Name:        s.book.Name(isin),
		Symbol:      info.Symbol,
		Class:       info.Class,
		Currency:    cur,
		TradeDate:   info.TradeDate,
		Quantity:    pos.Held,
		Latest:      M(info.Latest, cur),
		DailyChange: info.DailyChange,
		Dividends:   M(pos.Dividends, cur).Round(),
		Valuation:   M(info.Latest, cur).Mul(pos.Held).Round(),
		IRR:         make(map[Window]Return),
		Perf:        make(map[Window]Return),
	}
	if summary.Name == "" {
		summary.Name = info.Name
	}

	inception := s.book.CashFlows(isin, Inception, prices, s.today)
	summary.Invested = M(InvestedCapital(inception), cur)
	summary.Gain = summary.Valuation.Sub(summary.Invested)
	if summary.Invested.IsPositive() {
		gain := summary.Gain.AsFloat() / summary.Invested.AsFloat()
		summary.GainPct = NewReturn(Percent(100 * gain))
	}

	for _, w := range Windows() {
		window := prices.Slice(w.RangeOn(s.today))
		summary.Perf[w] = SeriesPerformance(window)
		summary.IRR[w] = Xirr(s.book.CashFlows(isin, w, window, s.today))
	}
	return summary
}

// aggregate pools the retained asset lines into the portfolio summary and
// back fills each line's share of the whole.
func (s *Session) aggregate(assets []AssetSummary, schedules map[Window][][]CashFlow) (PortfolioSummary, bool) {
	if len(assets) == 0 {
		return PortfolioSummary{}, false
	}

	portfolio := PortfolioSummary{Lines: len(assets), IRR: make(map[Window]Return)}
	valuation, dividends, invested := decimal.Zero, decimal.Zero, decimal.Zero
	for _, a := range assets {
		portfolio.Currency = cur(Money{cur: portfolio.Currency}, Money{cur: a.Currency})
		valuation = valuation.Add(a.Valuation.value)
		dividends = dividends.Add(a.Dividends.value)
		invested = invested.Add(a.Invested.value)
	}
	portfolio.Valuation = M(valuation, portfolio.Currency)
	portfolio.Dividends = M(dividends, portfolio.Currency)
	portfolio.Invested = M(invested, portfolio.Currency)
	portfolio.Gain = portfolio.Valuation.Sub(portfolio.Invested)
	if portfolio.Invested.IsPositive() {
		gain := portfolio.Gain.AsFloat() / portfolio.Invested.AsFloat()
		portfolio.GainPct = NewReturn(Percent(100 * gain))
	}

	for _, w := range Windows() {
		portfolio.IRR[w] = Xirr(CombineCashFlows(schedules[w]...))
	}

	for i := range assets {
		assets[i].Proportion = Percent(100 * assets[i].Valuation.AsFloat() / portfolio.Valuation.AsFloat())
	}
	return portfolio, true
}
