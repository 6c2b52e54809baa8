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

type logCmd struct {
	isin string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the operations in the log" }
func (*logCmd) Usage() string {
	return `folio log [-isin <isin>]

  Lists the operation log in its sorted order, with the row numbers the
  delete command takes.

`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "Only list operations on this instrument.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var filters []func(folio.Operation) bool
	if c.isin != "" {
		filters = append(filters, folio.ByISIN(c.isin))
	}
	printMarkdown(renderer.LogMarkdown(book, filters...))
	return subcommands.ExitSuccess
}
