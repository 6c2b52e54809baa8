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

type historyCmd struct {
	isin   string
	window string
	rows   int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the daily valuation series" }
func (*historyCmd) Usage() string {
	return `folio history [-isin <isin>] [-window <window>] [-rows <n>]

  Shows the daily valuation of one instrument, or of the whole portfolio
  when no isin is given. See 'folio topic windows' for the windows.

`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "Instrument to chart. Defaults to the whole portfolio.")
	f.StringVar(&c.window, "window", "inception", "Window to chart over.")
	f.IntVar(&c.rows, "rows", 30, "Maximum number of rows to print.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := folio.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
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

	var values *folio.History[float64]
	title := "Portfolio Valuation"
	if c.isin == "" {
		values, err = session.PortfolioValues()
	} else {
		title = fmt.Sprintf("Valuation of %s", c.isin)
		values, err = session.AssetValues(c.isin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if values != nil {
		values = values.Slice(w.Range())
	}
	printMarkdown(renderer.HistoryMarkdown(title, values, c.rows))
	return subcommands.ExitSuccess
}
