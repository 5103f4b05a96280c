package table

import (
	"fmt"
	"strings"

	"datacheck/domain/core"
)

// Table is an ordered collection of named columns holding a canonicalized text
// view of tabular data. All comparison and checking logic operates on this
// view; semantic typing happens separately in the valuetype package.
type Table struct {
	names []string
	cols  map[string][]string
	nrows int
}

// New creates an empty table.
func New() *Table {
	return &Table{cols: make(map[string][]string)}
}

// FromRows builds a table from a header row and data rows. Short data rows are
// padded with missing values; extra cells are dropped. Column values are
// whitespace-trimmed.
func FromRows(header []string, rows [][]string) (*Table, error) {
	t := New()
	for _, name := range header {
		name = strings.TrimSpace(name)
		values := make([]string, len(rows))
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for j, name := range t.names {
			if j < len(row) {
				t.cols[name][i] = strings.TrimSpace(row[j])
			}
		}
	}
	return t, nil
}

// AddColumn appends a named column. The first column fixes the row count;
// subsequent columns must match it.
func (t *Table) AddColumn(name string, values []string) error {
	if name == "" {
		return core.NewShapeError("table", "", "column name is empty")
	}
	if _, ok := t.cols[name]; ok {
		return core.NewShapeError("table", name, "duplicate column name")
	}
	if len(t.names) > 0 && len(values) != t.nrows {
		return core.NewShapeError("table", name,
			fmt.Sprintf("column has %d values, table has %d rows", len(values), t.nrows))
	}
	t.names = append(t.names, name)
	t.cols[name] = values
	t.nrows = len(values)
	return nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the values of the named column, or nil when absent.
func (t *Table) Column(name string) []string {
	return t.cols[name]
}

// Cell returns the value at (row, column), or "" when out of range.
func (t *Table) Cell(row int, name string) string {
	col := t.cols[name]
	if col == nil || row < 0 || row >= len(col) {
		return ""
	}
	return col[row]
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.nrows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.names)
}

// Row materializes one row in column order.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.names))
	for j, name := range t.names {
		row[j] = t.cols[name][i]
	}
	return row
}

// Rows materializes all rows in order.
func (t *Table) Rows() [][]string {
	rows := make([][]string, t.nrows)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New()
	for _, name := range t.names {
		values := make([]string, t.nrows)
		copy(values, t.cols[name])
		c.names = append(c.names, name)
		c.cols[name] = values
	}
	c.nrows = t.nrows
	return c
}

// IsMissing reports whether a canonical text value counts as missing.
func IsMissing(v string) bool {
	return v == "" || v == "NA"
}

// missingCount returns how many values in the column are missing.
func missingCount(values []string) int {
	n := 0
	for _, v := range values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}
