// Package dataset defines the uniform in-memory representation of one
// imported table: a header row followed by data rows, all with the same
// field count. The types here are engine-agnostic — the database driver
// produces them and the exporter consumes them, with no knowledge of
// each other.
package dataset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/koustreak/DatView/internal/errs"
)

// Table is the full contents of one table: the column names in the
// engine's declaration order, and every row in scan order. Field values
// keep their native driver types (int64, float64, string, []byte, nil);
// conversion to text happens only at the display/export boundary via
// FieldText.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// NumColumns returns the width shared by the header and every row.
func (t *Table) NumColumns() int {
	return len(t.Header)
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// AppendRow adds one row to the table after checking the field-count
// invariant. A width mismatch means the engine returned an inconsistent
// result set for a single query, which a well-formed database never does.
func (t *Table) AppendRow(row []any) error {
	if len(row) != len(t.Header) {
		return errs.New(errs.ErrKindTableRead, fmt.Sprintf(
			"table %q: row has %d fields, header has %d",
			t.Name, len(row), len(t.Header)))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Collection is the result of one import: every table in the source
// file, keyed by name, in catalog discovery order. It is built fresh on
// each import and never mutated afterwards — callers treat it as
// read-only shared state.
type Collection struct {
	names  []string
	tables map[string]*Table
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{tables: make(map[string]*Table)}
}

// Add inserts a table under its name. Adding the same name twice is a
// caller bug — table names are unique within one database.
func (c *Collection) Add(t *Table) error {
	if _, ok := c.tables[t.Name]; ok {
		return errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("duplicate table name %q", t.Name))
	}
	c.names = append(c.names, t.Name)
	c.tables[t.Name] = t
	return nil
}

// Names returns the table names in discovery order.
// The returned slice must not be modified.
func (c *Collection) Names() []string {
	return c.names
}

// Get returns the table with the given name, or nil if it is not part
// of this collection.
func (c *Collection) Get(name string) *Table {
	return c.tables[name]
}

// Len returns the number of tables in the collection.
func (c *Collection) Len() int {
	return len(c.names)
}

// FieldText converts a single field value to its canonical textual form
// for display and CSV export. NULL becomes the empty string rather than
// a "null" literal, so numeric columns survive a re-import.
func FieldText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		// SQLite stores booleans as integers; this covers drivers that
		// decode them anyway.
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// RowText converts a whole row with FieldText.
func RowText(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FieldText(v)
	}
	return out
}
