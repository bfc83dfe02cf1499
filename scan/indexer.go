package scan

import (
	"strings"

	"github.com/numtab/numtab/model"
)

// Index partitions src into an ordered sequence of (header, data)
// datasets covering the entire source. Every line is tokenized on
// whitespace and classified; a dataset's data block is a maximal run of
// lines sharing a token count, with every required token parsing as a
// float, at least cfg.MinRows lines long. The header of each dataset is
// the verbatim source text between the previous block's end (or the start
// of the source) and the block's first line. Text after the last block
// becomes a final header-only dataset with an empty matrix.
//
// Lines with fewer tokens than the selection requires are invisible to
// boundary detection: two equal-width runs separated only by such lines
// (a blank line, typically) form a single block. A line that has enough
// tokens but fails to parse is a hard break, even when the runs on either
// side have the same width.
//
// A column selection is resolved against each block independently, taking
// every index modulo the block width; out-of-range indices therefore wrap
// rather than fail, which makes negative indices count from the end of
// the row. Concatenating the headers and block texts in order reproduces
// src byte-for-byte.
func Index(src []byte, cfg Config) []model.Dataset {
	lines := splitLines(string(src))

	tokens, recs := tokenizeLines(lines, cfg.Columns)

	// Lines too narrow for the selection take no part in boundary
	// detection.
	minCols := minimumColumns(cfg.Columns)
	survivors := make([]int, 0, len(recs))
	for i, rec := range recs {
		if rec.Count >= minCols {
			survivors = append(survivors, i)
		}
	}

	spans := findBlocks(recs, survivors, cfg.MinRows)

	var datasets []model.Dataset
	headerStart := 0
	for _, sp := range spans {
		first := recs[survivors[sp.begin]]
		last := recs[survivors[sp.end-1]]

		header := strings.Join(lines[headerStart:first.Index], "")
		headerStart = last.Index + 1

		datasets = append(datasets, model.Dataset{
			Header: header,
			Data:   materialize(tokens, recs, survivors[sp.begin:sp.end], first.Count, cfg.Columns),
		})
	}

	if headerStart < len(lines) {
		datasets = append(datasets, model.Dataset{
			Header: strings.Join(lines[headerStart:], ""),
		})
	}
	return datasets
}

// tokenizeLines splits every line into whitespace-separated tokens,
// parses each token, and derives per-line records. A line's OK flag is
// false when any required token (all tokens without a selection, the
// selected columns with one) failed to parse.
func tokenizeLines(lines []string, columns []int) ([]Token, []LineRecord) {
	var tokens []Token
	recs := make([]LineRecord, len(lines))

	for i, line := range lines {
		words := strings.Fields(line)
		first := len(tokens)
		ok := true
		for col, w := range words {
			v, wok := parseFloat(w)
			tokens = append(tokens, Token{Line: i, Col: col, Value: v, OK: wok})
			if !wok && columns == nil {
				ok = false
			}
		}
		rec := LineRecord{Index: i, First: first, Last: len(tokens), Count: len(words), OK: ok}

		if columns != nil {
			for _, c := range columns {
				// Negative selections resolve modulo the block width
				// later; they cannot invalidate a line here.
				if c < 0 || c >= rec.Count {
					continue
				}
				if !tokens[rec.First+c].OK {
					rec.OK = false
					break
				}
			}
		}
		recs[i] = rec
	}
	return tokens, recs
}

// minimumColumns returns the token count a line needs to be considered
// for block membership: 1, raised to cover the highest selected index and
// the magnitude of the most negative one.
func minimumColumns(columns []int) int {
	min := 1
	if len(columns) == 0 {
		return min
	}
	lo, hi := columns[0], columns[0]
	for _, c := range columns {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	if hi+1 > min {
		min = hi + 1
	}
	if -lo > min {
		min = -lo
	}
	return min
}

// blockSpan is a candidate block as a half-open range over the surviving
// line indices.
type blockSpan struct {
	begin int
	end   int
}

// findBlocks walks the surviving lines once, collecting maximal runs of
// consecutive OK records with identical token counts. Any surviving
// non-OK record breaks a run; a width change ends one run and starts
// another. Runs shorter than minRows are discarded.
func findBlocks(recs []LineRecord, survivors []int, minRows int) []blockSpan {
	var spans []blockSpan
	i := 0
	for i < len(survivors) {
		first := recs[survivors[i]]
		if !first.OK {
			i++
			continue
		}
		j := i + 1
		for j < len(survivors) {
			rec := recs[survivors[j]]
			if !rec.OK || rec.Count != first.Count {
				break
			}
			j++
		}
		if j-i >= minRows {
			spans = append(spans, blockSpan{begin: i, end: j})
		}
		i = j
	}
	return spans
}

// materialize builds the numeric payload for one block. Without a
// selection the result is rows x width; with one it is rows x
// len(columns), each selected index taken modulo the block width.
func materialize(tokens []Token, recs []LineRecord, blockLines []int, width int, columns []int) model.Matrix {
	rows := len(blockLines)

	if columns == nil {
		m := model.NewMatrix(rows, width)
		for ri, li := range blockLines {
			rec := recs[li]
			for c := 0; c < width; c++ {
				m.Set(ri, c, tokens[rec.First+c].Value)
			}
		}
		return m
	}

	m := model.NewMatrix(rows, len(columns))
	for ci, c := range columns {
		cc := ((c % width) + width) % width
		for ri, li := range blockLines {
			rec := recs[li]
			m.Set(ri, ci, tokens[rec.First+cc].Value)
		}
	}
	return m
}
