package folio

import "fmt"

// AssetInfo is the market identity of an instrument, as known by a price
// provider.
type AssetInfo struct {
	ISIN        string
	Name        string
	Symbol      string
	Currency    string
	Class       string // "stock", "tracker", "opcvm"...
	Latest      float64
	DailyChange Percent
	TradeDate   Date
}

// PriceProvider serves market data for instruments. Implementations are
// expected to be slow (network bound), callers wrap them with [Memoize].
type PriceProvider interface {
	// Info returns the current snapshot for an instrument.
	Info(isin string) (AssetInfo, error)
	// Prices returns the end of day price series for an instrument over
	// the given window.
	Prices(isin string, w Window) (*History[float64], error)
}

// memoized caches every answer of a wrapped provider for the lifetime of
// the process. Market data moves once a day, a session never needs the
// same answer twice.
type memoized struct {
	provider PriceProvider
	infos    map[string]AssetInfo
	prices   map[string]*History[float64]
}

// Memoize wraps a provider with an in-memory cache.
func Memoize(p PriceProvider) PriceProvider {
	return &memoized{
		provider: p,
		infos:    make(map[string]AssetInfo),
		prices:   make(map[string]*History[float64]),
	}
}

func (m *memoized) Info(isin string) (AssetInfo, error) {
	if info, ok := m.infos[isin]; ok {
		return info, nil
	}
	info, err := m.provider.Info(isin)
	if err != nil {
		return AssetInfo{}, err
	}
	m.infos[isin] = info
	return info, nil
}

func (m *memoized) Prices(isin string, w Window) (*History[float64], error) {
	key := fmt.Sprintf("%s/%s", isin, w)
	if h, ok := m.prices[key]; ok {
		return h, nil
	}
	h, err := m.provider.Prices(isin, w)
	if err != nil {
		return nil, err
	}
	m.prices[key] = h
	return h, nil
}
