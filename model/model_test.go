package model

import (
	"testing"
)

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(2, 3)
	if r, c := m.Dims(); r != 2 || c != 3 {
		t.Errorf("Expected dims 2x3, got %dx%d", r, c)
	}
	if m.IsEmpty() {
		t.Error("Expected non-empty matrix")
	}
	if m.At(1, 2) != 0 {
		t.Errorf("Expected zero value, got %f", m.At(1, 2))
	}
}

func TestEmptyMatrix(t *testing.T) {
	var m Matrix
	if !m.IsEmpty() {
		t.Error("zero value should be empty")
	}
	if r, c := m.Dims(); r != 0 || c != 0 {
		t.Errorf("Expected dims 0x0, got %dx%d", r, c)
	}
	if len(m.RowSlices()) != 0 {
		t.Error("Expected no row slices")
	}
	if !m.Transpose().IsEmpty() {
		t.Error("transpose of empty matrix should be empty")
	}
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("MatrixFromRows failed: %v", err)
	}
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", m.Rows(), m.Cols())
	}
	if m.At(2, 1) != 6 {
		t.Errorf("Expected 6 at (2,1), got %f", m.At(2, 1))
	}
}

func TestMatrixFromRowsRagged(t *testing.T) {
	_, err := MatrixFromRows([][]float64{{1, 2}, {3}})
	if err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestMatrixRowCol(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})

	row := m.Row(1)
	if len(row) != 3 || row[0] != 4 || row[2] != 6 {
		t.Errorf("unexpected row: %v", row)
	}

	col := m.Col(2)
	if len(col) != 2 || col[0] != 3 || col[1] != 6 {
		t.Errorf("unexpected column: %v", col)
	}

	// Returned slices are copies
	row[0] = 99
	if m.At(1, 0) != 4 {
		t.Error("Row should return a copy")
	}
}

func TestMatrixTranspose(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	tr := m.Transpose()

	if tr.Rows() != 3 || tr.Cols() != 2 {
		t.Fatalf("Expected 3x2 transpose, got %dx%d", tr.Rows(), tr.Cols())
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if m.At(i, j) != tr.At(j, i) {
				t.Errorf("Mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestMatrixUnpack(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	cols := m.Unpack()
	if len(cols) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(cols))
	}
	x, y := cols[0], cols[1]
	if x[0] != 1 || x[1] != 3 || x[2] != 5 {
		t.Errorf("unexpected first column: %v", x)
	}
	if y[0] != 2 || y[1] != 4 || y[2] != 6 {
		t.Errorf("unexpected second column: %v", y)
	}
}

func TestMatrixEqual(t *testing.T) {
	a, _ := MatrixFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := MatrixFromRows([][]float64{{1, 2}, {3, 4}})
	c, _ := MatrixFromRows([][]float64{{1, 2}, {3, 5}})

	if !a.Equal(b) {
		t.Error("Expected a == b")
	}
	if a.Equal(c) {
		t.Error("Expected a != c")
	}
	if a.Equal(Matrix{}) {
		t.Error("Expected a != empty")
	}
}

func TestParseHeaderValue(t *testing.T) {
	tests := []struct {
		in       string
		isNumber bool
		number   float64
	}{
		{"10", true, 10},
		{"3.14", true, 3.14},
		{"-2.5e-3", true, -0.0025},
		{" 7 ", true, 7},
		{"banana", false, 0},
		{"1.0.0", false, 0},
		{"", false, 0},
	}

	for _, tc := range tests {
		v := ParseHeaderValue(tc.in)
		if v.IsNumber != tc.isNumber {
			t.Errorf("ParseHeaderValue(%q): IsNumber = %v, expected %v", tc.in, v.IsNumber, tc.isNumber)
			continue
		}
		if v.IsNumber && v.Number != tc.number {
			t.Errorf("ParseHeaderValue(%q): Number = %f, expected %f", tc.in, v.Number, tc.number)
		}
		if v.Text != tc.in {
			t.Errorf("ParseHeaderValue(%q): Text = %q", tc.in, v.Text)
		}
	}
}

func TestHeaderMapOrder(t *testing.T) {
	h := NewHeaderMap()
	h.Set("qmax", ParseHeaderValue("10"))
	h.Set("wavelength", ParseHeaderValue("0.142774"))
	h.Set("composition", ParseHeaderValue("Ni"))

	keys := h.Keys()
	expected := []string{"qmax", "wavelength", "composition"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(keys))
	}
	for i, k := range expected {
		if keys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
}

func TestHeaderMapUpsert(t *testing.T) {
	h := NewHeaderMap()
	h.Set("qmax", ParseHeaderValue("10"))
	h.Set("rmax", ParseHeaderValue("20"))
	h.Set("qmax", ParseHeaderValue("25"))

	if h.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", h.Len())
	}
	// Replacement keeps the original position
	if keys := h.Keys(); keys[0] != "qmax" {
		t.Errorf("Expected qmax first, got %q", keys[0])
	}
	v, ok := h.Get("qmax")
	if !ok || !v.IsNumber || v.Number != 25 {
		t.Errorf("Expected qmax = 25, got %+v", v)
	}
}

func TestDatasetHasData(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{1, 2}})
	if !(Dataset{Data: m}).HasData() {
		t.Error("Expected HasData for non-empty matrix")
	}
	if (Dataset{Header: "trailer\n"}).HasData() {
		t.Error("Expected no data for header-only dataset")
	}
}
