package renderer

import (
	"fmt"
	"strings"

	"github.com/boursier/folio"
)

// LogMarkdown renders the operation log as a markdown table, in the book's
// sorted order, with the row numbers the delete command takes.
func LogMarkdown(book *folio.Book, filters ...func(folio.Operation) bool) string {
	r := &logRenderer{Builder: &strings.Builder{}}

	r.Printf("# Operation Log\n\n")
	if book.Len() == 0 {
		r.Printf("The log is empty.\n")
		return r.String()
	}

	r.Printf("| Row | Date | Operation | Name | ISIN | Quantity | Value | Fees |\n")
	r.Printf("|---:|:---|:---|:---|:---|---:|---:|---:|\n")
	count := 0
	for row, op := range book.Operations(filters...) {
		r.renderOperation(row, op)
		count++
	}
	r.Printf("\n%d operations.\n", count)
	return r.String()
}

// logRenderer formats the output of the log report into a markdown string.
type logRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *logRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func (r *logRenderer) renderOperation(row int, op folio.Operation) {
	value := op.Value.String()
	if op.Kind == folio.Split {
		value = fmt.Sprintf("%d:%d", op.Num, op.Den)
	}
	quantity := op.Quantity.String()
	if op.Quantity.IsZero() {
		quantity = ""
	}
	fees := op.Fees.String()
	if op.Fees.IsZero() {
		fees = ""
	}
	r.Printf("| %d | %s | %s | %s | %s | %s | %s | %s |\n",
		row, op.Date, op.Kind, op.Name, op.ISIN, quantity, value, fees)
}
