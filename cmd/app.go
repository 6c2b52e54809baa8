// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/boursier/folio"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&dividendCmd{},
	&splitCmd{},
	&deleteCmd{},
	&logCmd{},
	&summaryCmd{},
	&assetCmd{},
	&historyCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookFile = flag.String("book-file", "operations.csv", "Path to the operation log file (CSV format)")

// LoadBook reads the app operation log. A missing file is an empty book.
func LoadBook() (*folio.Book, error) {
	return folio.LoadBook(*bookFile)
}

// SaveBook rewrites the app operation log atomically.
func SaveBook(b *folio.Book) error {
	return folio.SaveBook(*bookFile, b)
}

// NewSession opens an analytics session on the app operation log, backed
// by boursorama market data.
func NewSession(b *folio.Book) (*folio.Session, error) {
	return folio.NewSession(b, folio.NewBoursorama())
}

// appendOperation validates and appends one operation to the log, the
// shared tail of every recording subcommand.
func appendOperation(op folio.Operation) subcommands.ExitStatus {
	if err := op.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	book.Append(op)
	if err := SaveBook(book); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s\n", op)
	return subcommands.ExitSuccess
}

// printMarkdown renders a markdown report on the terminal.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		// Raw markdown is still readable.
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}
