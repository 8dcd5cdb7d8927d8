package sqlgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

const rule = "-- ============================================================================="

// Header describes the run at the top of the script
type Header struct {
	RunID       string
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Seed        int64
}

// Writer emits SQL statements in order. The first write error is kept and
// returned by every later call.
type Writer struct {
	out     *bufio.Writer
	dialect Dialect
	quote   bool
	counts  map[string]int
	err     error
}

// NewWriter creates a statement writer. With quoteIdentifiers set, table and
// column names are quoted the dialect's way.
func NewWriter(w io.Writer, dialect Dialect, quoteIdentifiers bool) *Writer {
	return &Writer{
		out:     bufio.NewWriter(w),
		dialect: dialect,
		quote:   quoteIdentifiers,
		counts:  make(map[string]int),
	}
}

// Dialect returns the writer's dialect
func (w *Writer) Dialect() Dialect {
	return w.dialect
}

func (w *Writer) write(s string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = errors.NewOutputError(err)
	}
	return w.err
}

// Header writes the run banner
func (w *Writer) Header(h Header) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "-- Data Population Script Generated on %s\n", h.GeneratedAt.Format(timestampLayout))
	fmt.Fprintf(&b, "-- Run ID: %s\n", h.RunID)
	fmt.Fprintf(&b, "-- Date Range: %s to %s\n", h.WindowStart.Format("2006-01-02"), h.WindowEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "-- Dialect: %s, Seed: %d\n", w.dialect.Name(), h.Seed)
	b.WriteString(rule + "\n\n")
	return w.write(b.String())
}

// Banner writes the comment that opens a table section
func (w *Writer) Banner(title string) error {
	return w.write("-- Data for " + title + " Table\n")
}

// Blank writes the empty line that closes a table section
func (w *Writer) Blank() error {
	return w.write("\n")
}

// Insert writes one INSERT statement
func (w *Writer) Insert(table string, columns []string, values ...Value) error {
	if len(columns) != len(values) {
		return fmt.Errorf("insert into %s: %d columns but %d values", table, len(columns), len(values))
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(w.ident(table))
	b.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(w.ident(c))
	}
	b.WriteString(") VALUES (")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Render(w.dialect))
	}
	b.WriteString(");\n")

	if err := w.write(b.String()); err != nil {
		return err
	}
	w.counts[table]++
	return nil
}

func (w *Writer) ident(name string) string {
	if !w.quote {
		return name
	}
	return w.dialect.QuoteIdent(name)
}

// Count returns how many rows were written to the table
func (w *Writer) Count(table string) int {
	return w.counts[table]
}

// Flush pushes buffered statements to the underlying writer
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = errors.NewOutputError(err)
	}
	return w.err
}
