// Package table provides a small in-memory table substrate with typed,
// named columns, group-by aggregation, and long-to-wide pivoting. The
// analytics packages build their transforms on top of it.
package table

import (
	"errors"
	"fmt"
)

// Substrate errors.
var (
	// ErrColumnNotFound is returned when a required column is absent
	// from a frame. Callers treat this as fatal: the input does not
	// match the expected schema.
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnType is returned when a column exists but has the wrong
	// type for the requested operation.
	ErrColumnType = errors.New("column has wrong type")

	// ErrLengthMismatch is returned when columns of differing lengths
	// are combined into one frame.
	ErrLengthMismatch = errors.New("column lengths differ")
)

// ColumnType identifies the value type held by a column.
type ColumnType int

const (
	// ColumnString holds identifier-like values.
	ColumnString ColumnType = iota

	// ColumnFloat holds numeric measurements.
	ColumnFloat
)

// Column is a single named, typed column. Exactly one of Strings or
// Floats is populated, matching Type.
type Column struct {
	Name    string
	Type    ColumnType
	Strings []string
	Floats  []float64
}

// StringColumn creates a string-typed column.
func StringColumn(name string, values []string) *Column {
	return &Column{Name: name, Type: ColumnString, Strings: values}
}

// FloatColumn creates a float-typed column.
func FloatColumn(name string, values []float64) *Column {
	return &Column{Name: name, Type: ColumnFloat, Floats: values}
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Type == ColumnString {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// cell returns the value at row i rendered as a string, used for
// group keys regardless of column type.
func (c *Column) cell(i int) string {
	if c.Type == ColumnString {
		return c.Strings[i]
	}
	return fmt.Sprintf("%g", c.Floats[i])
}

// Frame is an ordered collection of equal-length named columns.
type Frame struct {
	columns []*Column
	byName  map[string]*Column
	rows    int
}

// NewFrame creates a frame from the given columns. All columns must
// have the same length.
func NewFrame(columns ...*Column) (*Frame, error) {
	f := &Frame{byName: make(map[string]*Column, len(columns))}
	for i, col := range columns {
		if i == 0 {
			f.rows = col.Len()
		} else if col.Len() != f.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrLengthMismatch, col.Name, col.Len(), f.rows)
		}
		f.columns = append(f.columns, col)
		f.byName[col.Name] = col
	}
	return f, nil
}

// Rows returns the number of rows in the frame.
func (f *Frame) Rows() int { return f.rows }

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or ErrColumnNotFound.
func (f *Frame) Column(name string) (*Column, error) {
	col, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// FloatColumn returns the named column as floats, failing if the
// column is missing or string-typed.
func (f *Frame) FloatColumn(name string) ([]float64, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Type != ColumnFloat {
		return nil, fmt.Errorf("%w: %q is not numeric", ErrColumnType, name)
	}
	return col.Floats, nil
}

// StringColumn returns the named column as strings, failing if the
// column is missing or float-typed.
func (f *Frame) StringColumn(name string) ([]string, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Type != ColumnString {
		return nil, fmt.Errorf("%w: %q is not a string column", ErrColumnType, name)
	}
	return col.Strings, nil
}
