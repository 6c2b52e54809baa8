package folio

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind is a typed string identifying an operation in the log.
type Kind string

// Operation kinds as they appear in the log's "operation" column.
const (
	Buy      Kind = "Buy"
	Sell     Kind = "Sell"
	Dividend Kind = "Dividend"
	Split    Kind = "Split"
)

// ParseKind parses an operation kind from its log spelling.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Buy, Sell, Dividend, Split:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown operation kind %q", s)
	}
}

// Operation is a single recorded row of the log: one discrete event on one
// instrument. Operations are immutable once loaded into a replay pass.
type Operation struct {
	Name string // display name of the instrument
	ISIN string // instrument identifier
	Date Date
	Kind Kind

	// Quantity is the number of units bought or sold. Required for Buy and
	// Sell, absent for Dividend and Split.
	Quantity Quantity

	// Value is the per-unit amount: unit price for Buy/Sell, amount per
	// held unit for Dividend. Zero for Split, whose ratio is carried by
	// Num/Den instead.
	Value decimal.Decimal

	// Num and Den encode a split's post/pre ratio (2:1 -> Num=2, Den=1).
	Num, Den int64

	Fees decimal.Decimal
}

// Ratio returns the split's post/pre quantity ratio.
func (op Operation) Ratio() Quantity { return Q(op.Num).Div(Q(op.Den)) }

// MalformedRecordError reports a log record missing a field required by its
// operation kind.
type MalformedRecordError struct {
	Row   int // 1-based row in the log, 0 when unknown
	Kind  Kind
	Field string
}

func (e *MalformedRecordError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed record at row %d: %s operation requires field %q", e.Row, e.Kind, e.Field)
	}
	return fmt.Sprintf("malformed record: %s operation requires field %q", e.Kind, e.Field)
}

// InvalidSplitRatioError reports a split ratio that does not parse as
// "<positive-integer>:<positive-integer>".
type InvalidSplitRatioError struct {
	Ratio string
}

func (e *InvalidSplitRatioError) Error() string {
	return fmt.Sprintf("invalid split ratio %q: want \"<after>:<before>\" with positive integers", e.Ratio)
}

var splitRatioRE = regexp.MustCompile(`^(\d+):(\d+)$`)

// ParseSplitRatio parses a "post:pre" ratio string such as "2:1".
func ParseSplitRatio(s string) (num, den int64, err error) {
	match := splitRatioRE.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, &InvalidSplitRatioError{Ratio: s}
	}
	num, _ = strconv.ParseInt(match[1], 10, 64)
	den, _ = strconv.ParseInt(match[2], 10, 64)
	if num <= 0 || den <= 0 {
		return 0, 0, &InvalidSplitRatioError{Ratio: s}
	}
	return num, den, nil
}

// NewBuy records the purchase of a quantity of an instrument at a per-unit
// value.
func NewBuy(on Date, name, isin string, quantity Quantity, value decimal.Decimal) Operation {
	return Operation{Name: name, ISIN: isin, Date: on, Kind: Buy, Quantity: quantity, Value: value}
}

// NewSell records the sale of a quantity of an instrument at a per-unit
// value.
func NewSell(on Date, name, isin string, quantity Quantity, value decimal.Decimal) Operation {
	return Operation{Name: name, ISIN: isin, Date: on, Kind: Sell, Quantity: quantity, Value: value}
}

// NewDividend records a per-unit dividend payment. The amount received is
// the value times the quantity held on that day, resolved at replay time.
func NewDividend(on Date, name, isin string, value decimal.Decimal) Operation {
	return Operation{Name: name, ISIN: isin, Date: on, Kind: Dividend, Value: value}
}

// NewSplit records a num:den share split (2:1 doubles the held quantity).
func NewSplit(on Date, name, isin string, num, den int64) Operation {
	return Operation{Name: name, ISIN: isin, Date: on, Kind: Split, Num: num, Den: den}
}

// Validate checks that the fields required by the operation's kind are
// present.
func (op Operation) Validate() error {
	if op.ISIN == "" {
		return &MalformedRecordError{Kind: op.Kind, Field: "isin"}
	}
	if op.Date.IsZero() {
		return &MalformedRecordError{Kind: op.Kind, Field: "date"}
	}
	switch op.Kind {
	case Buy, Sell:
		if op.Quantity.IsZero() || op.Quantity.IsNegative() {
			return &MalformedRecordError{Kind: op.Kind, Field: "quantity"}
		}
		if op.Value.IsZero() {
			return &MalformedRecordError{Kind: op.Kind, Field: "value"}
		}
	case Dividend:
		if op.Value.IsZero() {
			return &MalformedRecordError{Kind: op.Kind, Field: "value"}
		}
	case Split:
		if op.Num <= 0 || op.Den <= 0 {
			return &InvalidSplitRatioError{Ratio: fmt.Sprintf("%d:%d", op.Num, op.Den)}
		}
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
	return nil
}

// Amount returns the gross cash amount of the operation, quantity times
// unit value. It is zero for Dividend and Split, whose cash effect depends
// on the held quantity at replay time.
func (op Operation) Amount() decimal.Decimal {
	switch op.Kind {
	case Buy, Sell:
		return op.Value.Mul(op.Quantity.value)
	default:
		return decimal.Zero
	}
}

func (op Operation) String() string {
	switch op.Kind {
	case Split:
		return fmt.Sprintf("%s %s %s %d:%d", op.Date, op.Kind, op.ISIN, op.Num, op.Den)
	case Dividend:
		return fmt.Sprintf("%s %s %s %s/unit", op.Date, op.Kind, op.ISIN, op.Value)
	default:
		return fmt.Sprintf("%s %s %s %s @ %s", op.Date, op.Kind, op.ISIN, op.Quantity, op.Value)
	}
}
