package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/boursier/folio"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// opCmd carries the flags shared by every recording subcommand.
type opCmd struct {
	date string
	name string
	isin string
}

func (c *opCmd) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date of the operation (YYYY-MM-DD).")
	f.StringVar(&c.name, "name", "", "Display name of the instrument.")
	f.StringVar(&c.isin, "isin", "", "ISIN of the instrument.")
}

func (c *opCmd) parseDate() (folio.Date, error) {
	return folio.ParseDate(c.date)
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("missing -%s", field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s %q: %w", field, s, err)
	}
	return d, nil
}

type buyCmd struct {
	opCmd
	quantity string
	value    string
	fees     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of an instrument" }
func (*buyCmd) Usage() string {
	return `folio buy -d <date> -name <name> -isin <isin> -q <quantity> -v <unit-value> [-fees <fees>]

  Records a purchase in the operation log.

Usage Examples:
$ folio buy -d 2024-03-21 -name "Air Liquide" -isin FR0000120073 -q 10 -v 160.0

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.quantity, "q", "", "Number of units bought.")
	f.StringVar(&c.value, "v", "", "Price paid per unit.")
	f.StringVar(&c.fees, "fees", "0", "Fees paid for the operation.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, err := c.operation(folio.Buy)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return appendOperation(op)
}

func (c *buyCmd) operation(kind folio.Kind) (folio.Operation, error) {
	on, err := c.parseDate()
	if err != nil {
		return folio.Operation{}, err
	}
	quantity, err := parseDecimal(c.quantity, "q")
	if err != nil {
		return folio.Operation{}, err
	}
	value, err := parseDecimal(c.value, "v")
	if err != nil {
		return folio.Operation{}, err
	}
	fees, err := parseDecimal(c.fees, "fees")
	if err != nil {
		return folio.Operation{}, err
	}
	op := folio.Operation{Name: c.name, ISIN: c.isin, Date: on, Kind: kind, Quantity: folio.Q(quantity), Value: value, Fees: fees}
	return op, nil
}

type sellCmd struct{ buyCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an instrument" }
func (*sellCmd) Usage() string {
	return `folio sell -d <date> -isin <isin> -q <quantity> -v <unit-value> [-fees <fees>]

  Records a sale in the operation log.

`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, err := c.operation(folio.Sell)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return appendOperation(op)
}

type dividendCmd struct {
	opCmd
	value string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `folio dividend -d <date> -isin <isin> -v <value-per-unit>

  Records a dividend. The cash received is the value per unit times the
  quantity held at that date, computed at report time.

`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.value, "v", "", "Dividend paid per unit held.")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := c.parseDate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	value, err := parseDecimal(c.value, "v")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return appendOperation(folio.NewDividend(on, c.name, c.isin, value))
}

type splitCmd struct {
	opCmd
	ratio string
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "record a stock split" }
func (*splitCmd) Usage() string {
	return `folio split -d <date> -isin <isin> -ratio <after>:<before>

  Records a split. The held quantity is rescaled by the ratio and rounded
  down to a whole number of units.

Usage Examples:
$ folio split -d 2023-10-02 -isin FR0010177378 -ratio 2:1

`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.ratio, "ratio", "", "Split ratio, units after over units before.")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := c.parseDate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	num, den, err := folio.ParseSplitRatio(c.ratio)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return appendOperation(folio.NewSplit(on, c.name, c.isin, num, den))
}
