// Package xlsxtab flattens XLSX workbooks into scannable text lines.
// Every worksheet row becomes a tab-separated line, so numeric regions in
// spreadsheet exports can be detected by the same block scanner used for
// plain text files.
package xlsxtab

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet holds the flattened rows of one worksheet.
type Sheet struct {
	Name  string
	Lines []string
}

// Text returns the sheet content as newline-terminated text, ready for
// block scanning.
func (s Sheet) Text() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}

// Reader provides access to the flattened content of an XLSX workbook.
type Reader struct {
	file   *excelize.File
	sheets []Sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return load(f)
}

// OpenReader parses an XLSX workbook from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return load(f)
}

// load flattens every worksheet in workbook order.
func load(f *excelize.File) (*Reader, error) {
	r := &Reader{file: f}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}

		var lines []string
		for _, row := range rows {
			// Trailing empty cells would otherwise become phantom
			// columns.
			for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
				row = row[:len(row)-1]
			}
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = strings.Join(strings.Fields(cell), " ")
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
		r.sheets = append(r.sheets, Sheet{Name: name, Lines: lines})
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// Sheets returns the flattened worksheets in workbook order.
func (r *Reader) Sheets() []Sheet {
	return append([]Sheet(nil), r.sheets...)
}

// SheetCount returns the number of worksheets.
func (r *Reader) SheetCount() int { return len(r.sheets) }

// Text returns the whole workbook as newline-terminated text, sheets in
// workbook order.
func (r *Reader) Text() string {
	var sb strings.Builder
	for _, s := range r.sheets {
		sb.WriteString(s.Text())
	}
	return sb.String()
}
