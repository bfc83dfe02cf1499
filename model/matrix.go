package model

import "fmt"

// Matrix is a dense, row-major table of float64 values. The zero value is
// an empty 0x0 matrix, which is also the "no data found" result: callers
// receive an empty matrix rather than an error when no block qualifies.
type Matrix struct {
	rows   int
	cols   int
	values []float64
}

// NewMatrix creates a zero-filled matrix with the given dimensions.
func NewMatrix(rows, cols int) Matrix {
	if rows <= 0 || cols <= 0 {
		return Matrix{}
	}
	return Matrix{
		rows:   rows,
		cols:   cols,
		values: make([]float64, rows*cols),
	}
}

// MatrixFromRows builds a matrix from row slices. All rows must have the
// same length; a ragged input returns an error.
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
		copy(m.values[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// IsEmpty reports whether the matrix holds no values.
func (m Matrix) IsEmpty() bool { return m.rows == 0 || m.cols == 0 }

// At returns the value at row i, column j. It panics if the indices are
// out of range, matching slice indexing behavior.
func (m Matrix) At(i, j int) float64 {
	m.check(i, j)
	return m.values[i*m.cols+j]
}

// Set assigns the value at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.check(i, j)
	m.values[i*m.cols+j] = v
}

func (m Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("model: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("model: row %d out of range for %dx%d matrix", i, m.rows, m.cols))
	}
	row := make([]float64, m.cols)
	copy(row, m.values[i*m.cols:(i+1)*m.cols])
	return row
}

// Col returns a copy of column j.
func (m Matrix) Col(j int) []float64 {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("model: column %d out of range for %dx%d matrix", j, m.rows, m.cols))
	}
	col := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		col[i] = m.values[i*m.cols+j]
	}
	return col
}

// RowSlices returns the matrix as a slice of row slices. The slices are
// copies; mutating them does not affect the matrix.
func (m Matrix) RowSlices() [][]float64 {
	rows := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		rows[i] = m.Row(i)
	}
	return rows
}

// Unpack returns the matrix as a slice of column slices, suitable for
// assigning individual columns to variables:
//
//	cols := m.Unpack()
//	x, y := cols[0], cols[1]
func (m Matrix) Unpack() [][]float64 {
	cols := make([][]float64, m.cols)
	for j := 0; j < m.cols; j++ {
		cols[j] = m.Col(j)
	}
	return cols
}

// Transpose returns a new matrix with rows and columns swapped.
func (m Matrix) Transpose() Matrix {
	if m.IsEmpty() {
		return Matrix{}
	}
	t := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.values[j*m.rows+i] = m.values[i*m.cols+j]
		}
	}
	return t
}

// Equal reports whether two matrices have identical dimensions and values.
func (m Matrix) Equal(other Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}
