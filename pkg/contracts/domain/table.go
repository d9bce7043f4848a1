package domain

import (
	"fmt"
	"strconv"
)

// DataTable is a column-oriented view of a delimited file: a header row
// naming each column and the data rows beneath it. Cells stay as strings
// until a consumer asks for a typed column, mirroring how the engine's CSV
// output is consumed selectively.
type DataTable struct {
	Columns []string
	Rows    [][]string
}

// RowCount reports the number of data rows (the header excluded).
func (t *DataTable) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *DataTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *DataTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// FloatColumn parses the named column as float64 values.
func (t *DataTable) FloatColumn(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return t.floatColumnAt(idx, name)
}

// Series returns the first column parsed as float64 values. The tabular
// loader guarantees at least one column and one row, so this is the
// canonical way to obtain the observed time series.
func (t *DataTable) Series() ([]float64, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}
	return t.floatColumnAt(0, t.Columns[0])
}

func (t *DataTable) floatColumnAt(idx int, name string) ([]float64, error) {
	values := make([]float64, 0, len(t.Rows))
	for i, row := range t.Rows {
		if idx >= len(row) {
			return nil, fmt.Errorf("row %d has no value for column %q", i+1, name)
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: %w", i+1, name, err)
		}
		values = append(values, v)
	}
	return values, nil
}
