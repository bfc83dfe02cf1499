package scan

import (
	"strconv"
	"strings"
)

// Token is a single whitespace- or delimiter-separated field of a line.
type Token struct {
	Line  int     // index of the owning line
	Col   int     // zero-based column within the line
	Value float64 // parsed value, 0 when OK is false
	OK    bool    // whether the field parsed as a float
}

// LineRecord summarizes the tokens of one line.
type LineRecord struct {
	Index int  // line index in the source
	First int  // index of the line's first token in the token stream
	Last  int  // one past the line's last token
	Count int  // number of tokens on the line
	OK    bool // whether every required token parsed as a float
}

// parseFloat converts a field to a float64, tolerating surrounding
// whitespace. The boolean reports success.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// splitTokens splits a line into fields. With an empty delimiter any run
// of whitespace separates fields; otherwise the line is split on the
// delimiter and trailing blank fields are dropped, so that a trailing
// "1.0,2.0," does not produce a phantom column.
func splitTokens(line, delimiter string) []string {
	if delimiter == "" {
		return strings.Fields(line)
	}
	words := strings.Split(line, delimiter)
	for len(words) > 0 && strings.TrimSpace(words[len(words)-1]) == "" {
		words = words[:len(words)-1]
	}
	return words
}

// lineShape classifies a line as its (column count, parsed value count)
// pair. A failed classification is the zero shape.
type lineShape struct {
	cols int
	vals int
}

// less compares shapes lexicographically, matching tuple comparison of
// (columns, values) against the minimum acceptable shape.
func (s lineShape) less(min lineShape) bool {
	if s.cols != min.cols {
		return s.cols < min.cols
	}
	return s.vals < min.vals
}

// classifyLine tokenizes a line and determines its shape. When columns is
// nil every field must parse as a float; otherwise only the selected
// columns must parse, with negative indices resolved from the end of the
// row. Any parse failure or unresolvable index yields the zero shape.
func classifyLine(line, delimiter string, columns []int) lineShape {
	words := splitTokens(line, delimiter)
	nc := len(words)

	if columns == nil {
		for _, w := range words {
			if _, ok := parseFloat(w); !ok {
				return lineShape{}
			}
		}
		return lineShape{cols: nc, vals: nc}
	}

	for _, c := range columns {
		if c < 0 {
			c += nc
		}
		if c < 0 || c >= nc {
			return lineShape{}
		}
		if _, ok := parseFloat(words[c]); !ok {
			return lineShape{}
		}
	}
	return lineShape{cols: nc, vals: len(columns)}
}

// minimumShape computes the smallest acceptable line shape: one numeric
// column, or enough columns to cover the selection and enough parsed
// values to cover its distinct indices.
func minimumShape(columns []int) lineShape {
	if len(columns) == 0 {
		return lineShape{cols: 1, vals: 1}
	}
	lo, hi := columns[0], columns[0]
	distinct := make(map[int]struct{}, len(columns))
	for _, c := range columns {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
		distinct[c] = struct{}{}
	}
	cols := hi + 1
	if -lo > cols {
		cols = -lo
	}
	return lineShape{cols: cols, vals: len(distinct)}
}

// splitLines splits src into lines, keeping line terminators, so that
// header text reassembles byte-for-byte. The final line is kept even
// without a trailing newline.
func splitLines(src string) []string {
	var lines []string
	for len(src) > 0 {
		i := strings.IndexByte(src, '\n')
		if i < 0 {
			lines = append(lines, src)
			break
		}
		lines = append(lines, src[:i+1])
		src = src[i+1:]
	}
	return lines
}
