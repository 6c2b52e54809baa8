package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/boursier/folio"
	"github.com/boursier/folio/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `folio summary

  Shows one line per held instrument with valuation, share of the
  portfolio, gain and money weighted return, followed by the portfolio
  totals.

`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	session, err := NewSession(book)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	assets, err := session.AssetSummaries()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	portfolio, _, err := session.PortfolioSummary()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(assets, portfolio, folio.Today()))
	return subcommands.ExitSuccess
}

type assetCmd struct {
	isin string
}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "show the detail report of one instrument" }
func (*assetCmd) Usage() string {
	return `folio asset -isin <isin>

  Shows the full analytics of one instrument: position, invested capital,
  dividends, and returns over every window.

`
}

func (c *assetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN of the instrument to report on.")
}

func (c *assetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.isin == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -isin")
		return subcommands.ExitUsageError
	}
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	session, err := NewSession(book)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	assets, err := session.AssetSummaries()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, a := range assets {
		if a.ISIN == c.isin {
			printMarkdown(renderer.AssetMarkdown(a))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no held instrument with isin %q\n", c.isin)
	return subcommands.ExitFailure
}
