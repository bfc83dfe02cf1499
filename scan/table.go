package scan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/numtab/numtab/model"
)

// ReadTable parses consecutive rows of float columns from r, starting at
// its current position, and returns them as a matrix with one output
// column per entry of columns (order and duplicates preserved; negative
// indices count from the end of each row). A nil selection takes every
// column of the first row.
//
// A data block is a maximal run of conforming lines, so parsing stops at
// the first line that fails to yield the required columns; that line and
// everything after it are not part of the table.
func ReadTable(r io.Reader, delimiter string, columns []int) (model.Matrix, error) {
	br := bufio.NewReader(r)
	var rows [][]float64

	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			words := splitTokens(line, delimiter)
			if columns == nil {
				columns = make([]int, len(words))
				for i := range columns {
					columns[i] = i
				}
			}
			row, ok := selectRow(words, columns)
			if !ok {
				break
			}
			rows = append(rows, row)
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return model.Matrix{}, fmt.Errorf("reading line: %w", rerr)
		}
	}

	m, err := model.MatrixFromRows(rows)
	if err != nil {
		return model.Matrix{}, fmt.Errorf("assembling table: %w", err)
	}
	return m, nil
}

// selectRow extracts the selected columns of one tokenized line. It
// reports failure when an index cannot be resolved or a value does not
// parse.
func selectRow(words []string, columns []int) ([]float64, bool) {
	row := make([]float64, len(columns))
	for i, c := range columns {
		if c < 0 {
			c += len(words)
		}
		if c < 0 || c >= len(words) {
			return nil, false
		}
		v, ok := parseFloat(words[c])
		if !ok {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}
