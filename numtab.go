// Package numtab provides a fluent API for extracting numeric data tables
// and header metadata from text-based scientific data files.
//
// Basic usage:
//
//	data, warnings, err := numtab.Open("sample.gr").Data()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", numtab.FormatWarnings(warnings))
//	}
//
// With options:
//
//	data, _, err := numtab.Open("sample.chi").
//	    MinRows(5).
//	    Columns(0, 1).
//	    Unpack().
//	    Data()
//
// For files containing several independent data blocks, Datasets returns
// every block together with the free-form text preceding it:
//
//	sets, _, err := numtab.Open("multi.dat").Datasets()
//
// Gzip-compressed, HTML, and XLSX sources are detected and flattened to
// text automatically. For advanced use cases the lower-level scan package
// is also available.
package numtab

import (
	"io"

	"github.com/numtab/numtab/format"
)

// Open prepares an Extractor for the named file. The file is not touched
// until a terminal operation such as Data or Datasets runs; each terminal
// operation opens and closes the file itself.
//
// Example:
//
//	data, warnings, err := numtab.Open("sample.gr").Data()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor reading from r. The content is read
// fully on the first terminal operation and cached, so several terminal
// operations may run against the same Extractor. The caller retains
// ownership of r.
//
// Example:
//
//	data, warnings, err := numtab.FromReader(strings.NewReader(raw)).Data()
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	header := numtab.Must(numtab.Open("sample.gr").Header())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustData is a helper that wraps a call to Data() or Datasets() and panics
// if the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	data := numtab.MustData(numtab.Open("sample.gr").Data())
func MustData[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
