package table

import (
	"fmt"
	"sort"
)

// Matrix is a wide-form table: float cells addressed by row and column
// labels. Pivoting a long-form frame produces one; the distance
// pipeline builds square identifier-labelled matrices directly.
type Matrix struct {
	rowLabels []string
	colLabels []string
	rowIndex  map[string]int
	colIndex  map[string]int
	cells     [][]float64
}

// NewMatrix creates a zero-filled matrix with the given labels. Label
// order is preserved as given.
func NewMatrix(rowLabels, colLabels []string) *Matrix {
	m := &Matrix{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		rowIndex:  make(map[string]int, len(rowLabels)),
		colIndex:  make(map[string]int, len(colLabels)),
		cells:     make([][]float64, len(rowLabels)),
	}
	for i, l := range m.rowLabels {
		m.rowIndex[l] = i
		m.cells[i] = make([]float64, len(colLabels))
	}
	for j, l := range m.colLabels {
		m.colIndex[l] = j
	}
	return m
}

// RowLabels returns the row labels in order.
func (m *Matrix) RowLabels() []string { return append([]string(nil), m.rowLabels...) }

// ColLabels returns the column labels in order.
func (m *Matrix) ColLabels() []string { return append([]string(nil), m.colLabels...) }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rowLabels) }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return len(m.colLabels) }

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.cells[i][j] }

// Set assigns the cell at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.cells[i][j] = v }

// Cell returns the value at the given labels, with ok reporting
// whether both labels exist.
func (m *Matrix) Cell(row, col string) (float64, bool) {
	i, okR := m.rowIndex[row]
	j, okC := m.colIndex[col]
	if !okR || !okC {
		return 0, false
	}
	return m.cells[i][j], true
}

// SetCell assigns the value at the given labels, ignoring unknown
// labels.
func (m *Matrix) SetCell(row, col string, v float64) {
	i, okR := m.rowIndex[row]
	j, okC := m.colIndex[col]
	if okR && okC {
		m.cells[i][j] = v
	}
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix(m.colLabels, m.rowLabels)
	for i := range m.cells {
		for j, v := range m.cells[i] {
			t.cells[j][i] = v
		}
	}
	return t
}

// Add returns a new matrix that is the cell-wise sum of m and other.
// Both matrices must carry identical labels.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return nil, fmt.Errorf("matrix shapes differ: %dx%d vs %dx%d",
			m.Rows(), m.Cols(), other.Rows(), other.Cols())
	}
	for i, l := range m.rowLabels {
		if other.rowLabels[i] != l {
			return nil, fmt.Errorf("matrix row labels differ at %d: %q vs %q", i, l, other.rowLabels[i])
		}
	}
	for j, l := range m.colLabels {
		if other.colLabels[j] != l {
			return nil, fmt.Errorf("matrix column labels differ at %d: %q vs %q", j, l, other.colLabels[j])
		}
	}
	sum := NewMatrix(m.rowLabels, m.colLabels)
	for i := range m.cells {
		for j := range m.cells[i] {
			sum.cells[i][j] = m.cells[i][j] + other.cells[i][j]
		}
	}
	return sum, nil
}

// FillDiagonal sets every (i, i) cell of a square matrix to v.
func (m *Matrix) FillDiagonal(v float64) {
	n := m.Rows()
	if m.Cols() < n {
		n = m.Cols()
	}
	for i := 0; i < n; i++ {
		m.cells[i][i] = v
	}
}

// IsSquare reports whether the matrix is square with matching row and
// column labels.
func (m *Matrix) IsSquare() bool {
	if m.Rows() != m.Cols() {
		return false
	}
	for i, l := range m.rowLabels {
		if m.colLabels[i] != l {
			return false
		}
	}
	return true
}

// Map returns a new matrix with fn applied to every cell.
func (m *Matrix) Map(fn func(float64) float64) *Matrix {
	out := NewMatrix(m.rowLabels, m.colLabels)
	for i := range m.cells {
		for j, v := range m.cells[i] {
			out.cells[i][j] = fn(v)
		}
	}
	return out
}

// Pivot reshapes the frame long-to-wide: distinct values of the index
// column become sorted row labels, distinct values of the columns
// column become sorted column labels, and each (index, columns) pair's
// value fills the cell. Missing cells default to 0; when a pair occurs
// more than once the last row wins.
func (f *Frame) Pivot(index, columns, values string) (*Matrix, error) {
	idx, err := f.StringColumn(index)
	if err != nil {
		return nil, err
	}
	cols, err := f.StringColumn(columns)
	if err != nil {
		return nil, err
	}
	vals, err := f.FloatColumn(values)
	if err != nil {
		return nil, err
	}

	rowLabels := SortedLabels(idx)
	colLabels := SortedLabels(cols)
	m := NewMatrix(rowLabels, colLabels)
	for row := range vals {
		m.SetCell(idx[row], cols[row], vals[row])
	}
	return m, nil
}

// SortedLabels returns the distinct values of labels sorted with
// LessIdentifier.
func SortedLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return LessIdentifier(out[i], out[j]) })
	return out
}
