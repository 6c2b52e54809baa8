package folio

import (
	"crypto/sha1"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// bookHeader is the column layout of the persisted operation log.
var bookHeader = []string{"name", "isin", "date", "operation", "quantity", "value", "fees"}

// Book holds the normalized operation log.
//
// Operations are kept in a stable total order: date ascending, then isin,
// then name, ties broken by original log position. Row numbers exposed by
// Delete and Operations refer to this sorted view.
type Book struct {
	ops []Operation
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{ops: make([]Operation, 0)}
}

// Len returns the number of operations in the book.
func (b *Book) Len() int { return len(b.ops) }

// Append adds operations to the book and restores the sorted order.
func (b *Book) Append(ops ...Operation) {
	b.ops = append(b.ops, ops...)
	b.stableSort()
}

// stableSort sorts the book by (date, isin, name) ascending. The sort is
// stable: same-key operations keep their original relative order.
func (b *Book) stableSort() {
	sort.SliceStable(b.ops, func(i, j int) bool {
		a, z := b.ops[i], b.ops[j]
		if a.Date != z.Date {
			return a.Date.Before(z.Date)
		}
		if a.ISIN != z.ISIN {
			return a.ISIN < z.ISIN
		}
		return a.Name < z.Name
	})
}

// Delete removes the operation at a 1-based row in the sorted view.
func (b *Book) Delete(row int) error {
	if row < 1 || row > len(b.ops) {
		return fmt.Errorf("row %d out of range, book has %d operations", row, len(b.ops))
	}
	b.ops = append(b.ops[:row-1], b.ops[row:]...)
	return nil
}

// Operations returns an iterator over the sorted operations and their
// 1-based row numbers, keeping only operations accepted by at least one
// filter. Without filters every operation is yielded.
func (b *Book) Operations(filters ...func(Operation) bool) iter.Seq2[int, Operation] {
	return func(yield func(int, Operation) bool) {
		for i, op := range b.ops {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(op) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i+1, op) {
				return
			}
		}
	}
}

// ByISIN returns a predicate that filters operations by instrument.
func ByISIN(isin string) func(Operation) bool {
	return func(op Operation) bool { return op.ISIN == isin }
}

// ISINs returns the distinct instrument identifiers in the book, ordered by
// first appearance in the sorted view.
func (b *Book) ISINs() []string {
	seen := make(map[string]struct{})
	var isins []string
	for _, op := range b.ops {
		if _, ok := seen[op.ISIN]; ok {
			continue
		}
		seen[op.ISIN] = struct{}{}
		isins = append(isins, op.ISIN)
	}
	return isins
}

// Name returns the display name recorded for an instrument, from its most
// recent operation.
func (b *Book) Name(isin string) string {
	name := ""
	for _, op := range b.ops {
		if op.ISIN == isin && op.Name != "" {
			name = op.Name
		}
	}
	return name
}

// InceptionDate returns the date of the very first operation for the given
// instrument, and false when the book holds none.
func (b *Book) InceptionDate(isin string) (Date, bool) {
	for _, op := range b.ops {
		if op.ISIN == isin {
			return op.Date, true
		}
	}
	return Date{}, false
}

// OldestOperationDate returns the date of the earliest operation in the
// book, or the zero date when the book is empty.
func (b *Book) OldestOperationDate() Date {
	if len(b.ops) == 0 {
		return Date{}
	}
	return b.ops[0].Date
}

// Hash returns a fingerprint of the book's contents. Sessions use it as a
// cache version: derived artifacts memoized under one hash are recomputed
// when the hash changes.
func (b *Book) Hash() string {
	var sb strings.Builder
	if err := EncodeBook(&sb, b); err != nil {
		// EncodeBook on a strings.Builder cannot fail.
		panic(err)
	}
	return fmt.Sprintf("%x", sha1.Sum([]byte(sb.String())))
}

// DecodeBook reads a CSV operation log and returns a sorted Book. The first
// record must be the header. Records missing a field required by their
// operation kind fail with [MalformedRecordError]; a Split whose value
// column is not "<after>:<before>" fails with [InvalidSplitRatioError].
func DecodeBook(r io.Reader) (*Book, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read operation log: %w", err)
	}

	book := NewBook()
	for i, record := range records {
		if i == 0 {
			// Tolerate logs written without a header.
			if strings.EqualFold(record[0], "name") {
				continue
			}
		}
		op, err := decodeRecord(record)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Row = i
				return nil, malformed
			}
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		book.ops = append(book.ops, op)
	}
	book.stableSort()
	return book, nil
}

func decodeRecord(record []string) (Operation, error) {
	if len(record) != len(bookHeader) {
		return Operation{}, fmt.Errorf("want %d columns, got %d", len(bookHeader), len(record))
	}
	name, isin := record[0], record[1]

	kind, err := ParseKind(record[3])
	if err != nil {
		return Operation{}, err
	}
	on, err := ParseDate(record[2])
	if err != nil {
		return Operation{}, &MalformedRecordError{Kind: kind, Field: "date"}
	}

	op := Operation{Name: name, ISIN: isin, Date: on, Kind: kind}

	if q := record[4]; q != "" {
		value, err := decimal.NewFromString(q)
		if err != nil {
			return Operation{}, &MalformedRecordError{Kind: kind, Field: "quantity"}
		}
		op.Quantity = Q(value)
	}
	if f := record[6]; f != "" {
		if op.Fees, err = decimal.NewFromString(f); err != nil {
			return Operation{}, &MalformedRecordError{Kind: kind, Field: "fees"}
		}
	}

	switch kind {
	case Split:
		if op.Num, op.Den, err = ParseSplitRatio(record[5]); err != nil {
			return Operation{}, err
		}
	default:
		if record[5] == "" {
			return Operation{}, &MalformedRecordError{Kind: kind, Field: "value"}
		}
		if op.Value, err = decimal.NewFromString(record[5]); err != nil {
			return Operation{}, &MalformedRecordError{Kind: kind, Field: "value"}
		}
	}

	if err := op.Validate(); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// EncodeBook writes the book as a CSV operation log, header first, in the
// sorted order.
func EncodeBook(w io.Writer, b *Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bookHeader); err != nil {
		return err
	}
	for _, op := range b.ops {
		record := []string{op.Name, op.ISIN, op.Date.String(), string(op.Kind), "", "", "0"}
		if !op.Quantity.IsZero() {
			record[4] = op.Quantity.String()
		}
		switch op.Kind {
		case Split:
			record[5] = fmt.Sprintf("%d:%d", op.Num, op.Den)
		default:
			record[5] = op.Value.String()
		}
		if !op.Fees.IsZero() {
			record[6] = op.Fees.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadBook reads the operation log at path. A missing file yields an empty
// book: a portfolio that has never been written to simply has no
// operations.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open operation log %q: %w", path, err)
	}
	defer f.Close()

	book, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode operation log %q: %w", path, err)
	}
	return book, nil
}

// SaveBook rewrites the whole operation log at path. The write goes to a
// temporary file first and is moved into place with a rename, so a crash
// mid-write cannot leave a truncated log behind.
func SaveBook(path string, b *Book) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temporary log: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeBook(tmp, b); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode operation log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
