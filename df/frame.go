package df

import (
	"fmt"
)

// Column describes one column of a table-shaped frame: a unique,
// non-empty name, a logical type and a nullability flag. Nullability
// governs whether a null cell is a valid encoding for the column.
type Column struct {
	Name     string
	Type     DType
	Nullable bool
}

// NewColumn returns a non-nullable column descriptor.
func NewColumn(name string, typ DType) Column {
	return Column{Name: name, Type: typ}
}

// NewNullableColumn returns a nullable column descriptor.
func NewNullableColumn(name string, typ DType) Column {
	return Column{Name: name, Type: typ, Nullable: true}
}

// Series is a named, typed vector of values. It is the shape in which
// an index column is handed to the SQL builders.
type Series struct {
	name   string
	dtype  DType
	values []Value
}

// NewSeries returns a series with the given name and type.
func NewSeries(name string, typ DType, values ...Value) *Series {
	return &Series{name: name, dtype: typ, values: values}
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Type returns the series logical type.
func (s *Series) Type() DType { return s.dtype }

// Len returns the number of values.
func (s *Series) Len() int { return len(s.values) }

// Get returns the value at position i.
func (s *Series) Get(i int) Value { return s.values[i] }

// Append adds a value to the end of the series.
func (s *Series) Append(v Value) { s.values = append(s.values, v) }

// Values returns the backing slice. Callers must not mutate it.
func (s *Series) Values() []Value { return s.values }

// DataFrame is a row-addressable table: column descriptors plus rows of
// cell values. It is the unit persisted to and fetched from a database.
type DataFrame struct {
	cols []Column
	rows [][]Value
}

// NewDataFrame returns an empty frame with the given columns.
// Column names must be non-empty and unique.
func NewDataFrame(cols ...Column) (*DataFrame, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("df: column name must not be empty")
		}
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("df: duplicate column name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return &DataFrame{cols: cols}, nil
}

// MustNewDataFrame is like NewDataFrame but panics on invalid columns.
// Intended for tests and literals.
func MustNewDataFrame(cols ...Column) *DataFrame {
	d, err := NewDataFrame(cols...)
	if err != nil {
		panic(err)
	}
	return d
}

// Columns returns the column descriptors.
func (d *DataFrame) Columns() []Column { return d.cols }

// ColumnNames returns the column names in declaration order.
func (d *DataFrame) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Width returns the number of columns.
func (d *DataFrame) Width() int { return len(d.cols) }

// Height returns the number of rows.
func (d *DataFrame) Height() int { return len(d.rows) }

// AppendRow adds a row of cells. The row must match the frame width;
// each non-null cell must match its column's declared type.
func (d *DataFrame) AppendRow(row ...Value) error {
	if len(row) != len(d.cols) {
		return fmt.Errorf("df: row width %d does not match frame width %d", len(row), len(d.cols))
	}
	for i, v := range row {
		if v.IsNull() {
			continue
		}
		if v.Type() != d.cols[i].Type {
			return fmt.Errorf("df: cell %d has type %s, column %q expects %s",
				i, v.Type(), d.cols[i].Name, d.cols[i].Type)
		}
	}
	d.rows = append(d.rows, row)
	return nil
}

// Row returns the row at index i. Callers must not mutate it.
func (d *DataFrame) Row(i int) []Value { return d.rows[i] }

// At returns the cell at row i, column j.
func (d *DataFrame) At(i, j int) Value { return d.rows[i][j] }

// ColumnIndex returns the position of the named column, or -1.
func (d *DataFrame) ColumnIndex(name string) int {
	for i, c := range d.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column extracts the named column as a Series, or nil if absent.
func (d *DataFrame) Column(name string) *Series {
	j := d.ColumnIndex(name)
	if j < 0 {
		return nil
	}
	s := &Series{name: d.cols[j].Name, dtype: d.cols[j].Type, values: make([]Value, 0, len(d.rows))}
	for _, row := range d.rows {
		s.values = append(s.values, row[j])
	}
	return s
}
