// Package table contains the minimal tabular-data types used to
// reassemble feature rows. A [Row] is an ordered header plus one value
// per column; a [Table] is a header plus zero or more value rows. All
// values are strings: this repository only reshapes rows, it never
// interprets the numbers it moves around.
package table

import (
	"errors"
	"fmt"
)

// ErrHeaderMismatch means that a row has a different number of values
// than its header has columns.
var ErrHeaderMismatch = errors.New("table: header and values have different lengths")

// ErrEmptyTable means that the operation needs at least one data row.
var ErrEmptyTable = errors.New("table: the table has no rows")

// Row is a single tabular row.
type Row struct {
	// Header contains the ordered column names.
	Header []string

	// Values contains one value per column.
	Values []string
}

// NewRow constructs a [*Row] and checks that the header and the
// values have the same length.
func NewRow(header, values []string) (*Row, error) {
	if len(header) != len(values) {
		return nil, ErrHeaderMismatch
	}
	return &Row{Header: header, Values: values}, nil
}

// Merge returns a new row with the receiver's columns first, unaltered,
// followed by the other row's columns. We use this to prepend the
// original table row to a row of extracted feature values.
func (r *Row) Merge(other *Row) *Row {
	merged := &Row{}
	merged.Header = append(merged.Header, r.Header...)
	merged.Header = append(merged.Header, other.Header...)
	merged.Values = append(merged.Values, r.Values...)
	merged.Values = append(merged.Values, other.Values...)
	return merged
}

// Table is a header plus zero or more value rows.
type Table struct {
	// Header contains the ordered column names.
	Header []string

	// Rows contains the value rows; each row has one value per column.
	Rows [][]string
}

// Row returns the idx-th row of the table.
func (t *Table) Row(idx int) (*Row, error) {
	if idx < 0 || idx >= len(t.Rows) {
		return nil, fmt.Errorf("table: no such row: %d", idx)
	}
	return NewRow(t.Header, t.Rows[idx])
}

// FirstRow returns the first row of the table.
func (t *Table) FirstRow() (*Row, error) {
	if len(t.Rows) < 1 {
		return nil, ErrEmptyTable
	}
	return t.Row(0)
}

// ColumnIndex returns the index of the named column or an error.
func (t *Table) ColumnIndex(name string) (int, error) {
	for idx, col := range t.Header {
		if col == name {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("table: no such column: %s", name)
}

// AppendRow appends a row to the table, checking the header length.
func (t *Table) AppendRow(row *Row) error {
	if len(row.Values) != len(t.Header) {
		return ErrHeaderMismatch
	}
	t.Rows = append(t.Rows, row.Values)
	return nil
}

// Transpose flips the table over its diagonal. The header is treated
// as the first row of the grid; after transposing, the new first row
// becomes the header of the returned table.
func (t *Table) Transpose() *Table {
	grid := [][]string{}
	grid = append(grid, t.Header)
	grid = append(grid, t.Rows...)
	if len(grid[0]) < 1 {
		return &Table{}
	}
	flipped := make([][]string, len(grid[0]))
	for i := range flipped {
		flipped[i] = make([]string, len(grid))
		for j := range grid {
			flipped[i][j] = grid[j][i]
		}
	}
	return &Table{Header: flipped[0], Rows: flipped[1:]}
}

// TrimRows drops the first start rows of the table. It is an error
// for start to be larger than the number of rows.
func (t *Table) TrimRows(start int) (*Table, error) {
	if start < 0 || start > len(t.Rows) {
		return nil, fmt.Errorf("table: start row %d is bigger than the table", start)
	}
	return &Table{Header: t.Header, Rows: t.Rows[start:]}, nil
}

// Concat concatenates tables column-wise, increasing the number of
// columns. Shorter tables are padded with empty values.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	numRows := 0
	for _, t := range tables {
		if len(t.Rows) > numRows {
			numRows = len(t.Rows)
		}
	}
	for _, t := range tables {
		out.Header = append(out.Header, t.Header...)
	}
	for idx := 0; idx < numRows; idx++ {
		values := []string{}
		for _, t := range tables {
			if idx < len(t.Rows) {
				values = append(values, t.Rows[idx]...)
				continue
			}
			for range t.Header {
				values = append(values, "")
			}
		}
		out.Rows = append(out.Rows, values)
	}
	return out
}

// RemoveColumns returns a copy of the table without the named columns.
// Unknown names are ignored.
func (t *Table) RemoveColumns(names ...string) *Table {
	drop := map[string]bool{}
	for _, name := range names {
		drop[name] = true
	}
	out := &Table{}
	keep := []int{}
	for idx, col := range t.Header {
		if drop[col] {
			continue
		}
		keep = append(keep, idx)
		out.Header = append(out.Header, col)
	}
	for _, row := range t.Rows {
		values := make([]string, 0, len(keep))
		for _, idx := range keep {
			values = append(values, row[idx])
		}
		out.Rows = append(out.Rows, values)
	}
	return out
}
