package folio

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Boursorama serves market data scraped from boursorama.com.
//
// Instrument pages are found through the site search, which redirects
// straight to the quote page when the query is an ISIN. End of day series
// come from the GetTicksEOD JSON endpoint. All requests go through a
// client with a daily disk cache, so a session hits the network at most
// once per instrument and per day.
type Boursorama struct {
	client *http.Client
}

// NewBoursorama returns a provider backed by boursorama.com.
func NewBoursorama() *Boursorama {
	return &Boursorama{client: daily()}
}

const boursoramaBase = "https://www.boursorama.com"

var (
	// faceplate fields on the quote page
	boursoLatestRE    = regexp.MustCompile(`c-instrument--last[^>]*>([^<]+)<`)
	boursoVariationRE = regexp.MustCompile(`c-instrument--variation[^>]*>([^<]+)<`)
	boursoCurrencyRE  = regexp.MustCompile(`c-faceplate__price-currency[^>]*>\s*([^<\s]+)`)
	boursoIsinRE      = regexp.MustCompile(`c-faceplate__isin[^>]*>\s*([A-Z]{2}[A-Z0-9]{10})`)
	boursoNameRE      = regexp.MustCompile(`title="Cours ([^"]+)"`)
	boursoTradeDateRE = regexp.MustCompile(`([0-3][0-9])/([01][0-9])/([0-9]{4})`)
)

// Info searches boursorama for the instrument's quote page and scrapes its
// faceplate.
func (b *Boursorama) Info(isin string) (AssetInfo, error) {
	body, final, err := wget(b.client, fmt.Sprintf("%s/recherche/%s/", boursoramaBase, url.PathEscape(isin)))
	if err != nil {
		return AssetInfo{}, fmt.Errorf("cannot search %q on boursorama: %w", isin, err)
	}

	// The search redirects to a path like /bourse/trackers/cours/1rTCW8/,
	// the symbol is the second to last segment and the class precedes
	// "cours". Plain stocks live under /cours/<symbol>/ directly.
	segments := strings.Split(strings.Trim(strings.TrimPrefix(final, boursoramaBase), "/"), "/")
	if len(segments) < 2 {
		return AssetInfo{}, fmt.Errorf("no instrument found for %q, unexpected page %q", isin, final)
	}
	info := AssetInfo{ISIN: isin, Symbol: segments[len(segments)-1], Class: "stock"}
	for i, s := range segments {
		if s == "cours" && i > 0 && segments[i-1] != "bourse" {
			info.Class = segments[i-1]
		}
	}

	if m := boursoIsinRE.FindStringSubmatch(body); m != nil {
		info.ISIN = m[1]
	}
	if m := boursoNameRE.FindStringSubmatch(body); m != nil {
		info.Name = m[1]
	}
	if m := boursoCurrencyRE.FindStringSubmatch(body); m != nil {
		info.Currency = currencyCode(m[1])
	}
	if m := boursoTradeDateRE.FindStringSubmatch(body); m != nil {
		if on, err := ParseDate(fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])); err == nil {
			info.TradeDate = on
		}
	}
	m := boursoLatestRE.FindStringSubmatch(body)
	if m == nil {
		return AssetInfo{}, fmt.Errorf("no quote found for %q on boursorama page %q", isin, final)
	}
	if info.Latest, err = parseQuote(m[1]); err != nil {
		return AssetInfo{}, fmt.Errorf("cannot read latest quote for %q: %w", isin, err)
	}
	if m := boursoVariationRE.FindStringSubmatch(body); m != nil {
		if v, err := parseQuote(strings.TrimSuffix(m[1], "%")); err == nil {
			info.DailyChange = Percent(v)
		}
	}
	return info, nil
}

// Prices fetches the full end of day history for the instrument, slices it
// to the window and forward fills missing days through today.
func (b *Boursorama) Prices(isin string, w Window) (*History[float64], error) {
	info, err := b.Info(isin)
	if err != nil {
		return nil, err
	}

	// length=7300 asks for twenty years of daily ticks, enough to cover
	// the widest window.
	addr := fmt.Sprintf("%s/bourse/action/graph/ws/GetTicksEOD?symbol=%s&length=7300&period=0", boursoramaBase, url.QueryEscape(info.Symbol))
	var jobj any
	if err := jwget(b.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch quotes for %q: %w", isin, err)
	}
	jval, err := jsonpath.Get("$.d.QuoteTab", jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot read quotes for %q: %w", isin, err)
	}
	ticks, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("cannot read quotes for %q: QuoteTab is not a list", isin)
	}

	history := &History[float64]{}
	for _, tick := range ticks {
		jtick, ok := tick.(map[string]any)
		if !ok {
			continue
		}
		days, ok := jtick["d"].(float64)
		if !ok {
			continue
		}
		close, ok := jtick["c"].(float64)
		if !ok {
			continue
		}
		// "d" counts days since the unix epoch.
		history.Append(NewDate(1970, 1, 1).Add(int(days)), close)
	}
	if history.Len() == 0 {
		return nil, fmt.Errorf("no quotes for %q on boursorama", isin)
	}
	return history.ForwardFill(Today()).Slice(w.Range()), nil
}

// parseQuote reads a boursorama displayed number, which uses a comma for
// the decimal separator and spaces for grouping.
func parseQuote(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), err
	}
	return v, nil
}

// currencyCode maps the displayed currency sign to its ISO code.
func currencyCode(sign string) string {
	switch strings.TrimSpace(sign) {
	case "€", "EUR":
		return "EUR"
	case "$", "USD":
		return "USD"
	case "£", "GBP":
		return "GBP"
	case "CHF":
		return "CHF"
	default:
		return strings.TrimSpace(sign)
	}
}
