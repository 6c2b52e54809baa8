package folio

import (
	"testing"

	"github.com/shopspring/decimal"
)

// d is a date literal for tests.
func d(s string) Date { return MustParse(s) }

// dec is a decimal literal for tests.
func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

const (
	trackerISIN = "FR0011869353" // Amundi MSCI World
	stockISIN   = "FR0000120073" // Air Liquide
	opcvmISIN   = "FR0010177378" // Réserve Ecureuil
)

// scenarioBook builds a three instrument log exercising every operation
// kind: buys, sells, dividends and a split, over two years.
func scenarioBook(t *testing.T) *Book {
	t.Helper()
	book := NewBook()
	book.Append(
		NewBuy(d("2023-01-10"), "Amundi MSCI World", trackerISIN, Q(100), dec("50.00")),
		NewBuy(d("2023-03-15"), "Amundi MSCI World", trackerISIN, Q(150), dec("72.92")),
		NewSell(d("2023-06-20"), "Amundi MSCI World", trackerISIN, Q(50), dec("55.00")),
		NewBuy(d("2023-09-05"), "Amundi MSCI World", trackerISIN, Q(100), dec("33.75")),
		NewSell(d("2024-02-12"), "Amundi MSCI World", trackerISIN, Q(100), dec("25.00")),

		NewBuy(d("2023-02-01"), "Air Liquide", stockISIN, Q(30), dec("130")),
		NewBuy(d("2023-04-18"), "Air Liquide", stockISIN, Q(40), dec("140")),
		NewDividend(d("2023-05-30"), "Air Liquide", stockISIN, dec("2.75")),
		NewSell(d("2023-11-07"), "Air Liquide", stockISIN, Q(5), dec("150")),
		NewBuy(d("2024-03-21"), "Air Liquide", stockISIN, Q(10), dec("160")),
		NewSell(d("2024-05-15"), "Air Liquide", stockISIN, Q(10), dec("155")),
		NewDividend(d("2024-06-03"), "Air Liquide", stockISIN, dec("1.00")),

		NewBuy(d("2023-07-12"), "Réserve Ecureuil", opcvmISIN, Q(33), dec("60")),
		NewSplit(d("2023-10-02"), "Réserve Ecureuil", opcvmISIN, 2, 1),
		NewBuy(d("2024-01-25"), "Réserve Ecureuil", opcvmISIN, Q(1), dec("58")),
		NewDividend(d("2024-04-10"), "Réserve Ecureuil", opcvmISIN, dec("0.97")),
	)
	return book
}

// fakeProvider serves canned market data, one flat price series per
// instrument.
type fakeProvider struct {
	infos  map[string]AssetInfo
	prices map[string]*History[float64]
	calls  int
}

func newFakeProvider() *fakeProvider {
	flat := func(latest float64) *History[float64] {
		h := &History[float64]{}
		h.Append(d("2023-01-02"), latest)
		h.Append(d("2024-06-28"), latest)
		return h
	}
	return &fakeProvider{
		infos: map[string]AssetInfo{
			trackerISIN: {ISIN: trackerISIN, Name: "AMUNDI MSCI WORLD", Symbol: "1rTCW8", Currency: "EUR", Class: "tracker", Latest: 100, DailyChange: 0.5},
			stockISIN:   {ISIN: stockISIN, Name: "AIR LIQUIDE", Symbol: "1rPAI", Currency: "EUR", Class: "stock", Latest: 150, DailyChange: -0.2},
			opcvmISIN:   {ISIN: opcvmISIN, Name: "RESERVE ECUREUIL", Symbol: "MP-802642", Currency: "EUR", Class: "opcvm", Latest: 30},
		},
		prices: map[string]*History[float64]{
			trackerISIN: flat(100),
			stockISIN:   flat(150),
			opcvmISIN:   flat(30),
		},
	}
}

func (p *fakeProvider) Info(isin string) (AssetInfo, error) {
	p.calls++
	info, ok := p.infos[isin]
	if !ok {
		return AssetInfo{}, errUnknownInstrument(isin)
	}
	return info, nil
}

func (p *fakeProvider) Prices(isin string, w Window) (*History[float64], error) {
	p.calls++
	h, ok := p.prices[isin]
	if !ok {
		return nil, errUnknownInstrument(isin)
	}
	return h, nil
}

type errUnknownInstrument string

func (e errUnknownInstrument) Error() string { return "unknown instrument " + string(e) }
