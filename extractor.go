package numtab

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/numtab/numtab/decode"
	"github.com/numtab/numtab/format"
	"github.com/numtab/numtab/htmltab"
	"github.com/numtab/numtab/model"
	"github.com/numtab/numtab/scan"
	"github.com/numtab/numtab/xlsxtab"
)

// Extractor provides a fluent interface for extracting numeric data from
// text, gzip, HTML, and XLSX sources. Each configuration method returns a
// new Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source (exactly one of filename or reader is set)
	filename string
	format   format.Format
	reader   io.Reader

	// Cached content for reader sources, filled on first terminal op
	raw     []byte
	slurped bool

	// Configuration
	options ExtractOptions

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename: e.filename,
		format:   e.format,
		reader:   e.reader,
		raw:      e.raw,
		slurped:  e.slurped,
		options:  e.options.clone(),
		warnings: append([]Warning(nil), e.warnings...),
	}
	return newExt
}

func (e *Extractor) warn(code, message string) {
	e.warnings = append(e.warnings, Warning{Code: code, Message: message})
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MinRows sets the minimum number of consecutive matching rows required
// before a run of lines counts as a data block. The default is 10.
//
// Example:
//
//	data, _, err := numtab.Open("short.dat").MinRows(3).Data()
func (e *Extractor) MinRows(n int) *Extractor {
	newExt := e.clone()
	newExt.options.minRows = n
	return newExt
}

// Delimiter sets an explicit field delimiter for data lines, as accepted
// by strings.Split. By default fields are split on any run of whitespace.
// An explicit delimiter only affects the single-block Data and Header
// operations; Datasets always splits on whitespace.
//
// Example:
//
//	data, _, err := numtab.Open("sample.csv").Delimiter(",").Data()
func (e *Extractor) Delimiter(d string) *Extractor {
	newExt := e.clone()
	newExt.options.delimiter = d
	return newExt
}

// Columns restricts extraction to the given zero-based column indices, in
// the given order. Negative indices count from the right. Duplicates are
// kept. Multiple calls are cumulative.
//
// Example:
//
//	data, _, err := numtab.Open("sample.gr").Columns(0, -1).Data()
func (e *Extractor) Columns(cols ...int) *Extractor {
	newExt := e.clone()
	newExt.options.columns = append(newExt.options.columns, cols...)
	return newExt
}

// HeaderDelimiter sets the string separating keys from values on header
// lines. The default is "=".
//
// Example:
//
//	hdr, err := numtab.Open("sample.dat").HeaderDelimiter(":").Header()
func (e *Extractor) HeaderDelimiter(d string) *Extractor {
	newExt := e.clone()
	newExt.options.headerDelimiter = d
	return newExt
}

// HeaderIgnore adds line prefixes that disqualify a line from header
// parsing even when it contains the header delimiter. Multiple calls are
// cumulative.
//
// Example:
//
//	hdr, err := numtab.Open("sample.dat").HeaderIgnore("//", ";").Header()
func (e *Extractor) HeaderIgnore(prefixes ...string) *Extractor {
	newExt := e.clone()
	newExt.options.headerIgnore = append(newExt.options.headerIgnore, prefixes...)
	return newExt
}

// Unpack transposes the result of Data so that each row of the returned
// matrix holds one source column. This mirrors assigning columns to
// separate variables:
//
//	xy, _, err := numtab.Open("sample.gr").Unpack().Data()
//	x, y := xy.Row(0), xy.Row(1)
func (e *Extractor) Unpack() *Extractor {
	newExt := e.clone()
	newExt.options.unpack = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Data extracts the first qualifying numeric block from the source.
// A qualifying block is a run of at least MinRows consecutive lines whose
// fields all parse as numbers with a consistent column count. The returned
// matrix is empty, not an error, when no block qualifies.
func (e *Extractor) Data() (model.Matrix, []Warning, error) {
	src, err := e.resolve()
	if err != nil {
		return model.Matrix{}, e.warnings, err
	}
	defer src.close()

	cfg := e.options.scanConfig()
	var m model.Matrix
	if src.sheets != nil {
		// First qualifying block wins, scanning sheets in workbook order.
		for _, sh := range src.sheets {
			m, err = scan.ScanFirst(strings.NewReader(sh.Text()), cfg)
			if err != nil {
				return model.Matrix{}, e.warnings, err
			}
			if !m.IsEmpty() {
				break
			}
		}
	} else {
		m, err = scan.ScanFirst(src.text, cfg)
		if err != nil {
			return model.Matrix{}, e.warnings, err
		}
	}

	if e.options.unpack {
		m = m.Transpose()
	}
	return m, e.warnings, nil
}

// Header parses "key = value" style metadata lines preceding the first
// data block and returns them as an ordered map. Values that parse as
// numbers carry their numeric form alongside the original text.
func (e *Extractor) Header() (*model.HeaderMap, error) {
	src, err := e.resolve()
	if err != nil {
		return nil, err
	}
	defer src.close()

	return scan.ScanHeader(src.text, e.options.scanConfig())
}

// Datasets partitions the whole source into datasets: every maximal run
// of at least MinRows equal-width numeric lines becomes one dataset,
// paired with the verbatim text between it and the previous block. A
// final header-only dataset captures trailing text after the last block.
// Workbook sources are partitioned sheet by sheet.
func (e *Extractor) Datasets() ([]model.Dataset, []Warning, error) {
	src, err := e.resolve()
	if err != nil {
		return nil, e.warnings, err
	}
	defer src.close()

	cfg := e.options.scanConfig()
	if src.sheets != nil {
		var sets []model.Dataset
		for _, sh := range src.sheets {
			sets = append(sets, scan.Index([]byte(sh.Text()), cfg)...)
		}
		return sets, e.warnings, nil
	}

	raw, err := io.ReadAll(src.text)
	if err != nil {
		return nil, e.warnings, fmt.Errorf("reading source: %w", err)
	}
	return scan.Index(raw, cfg), e.warnings, nil
}

// ============================================================================
// Source resolution
// ============================================================================

// source is a resolved view of the input: UTF-8 text, plus the individual
// sheets when the input was a workbook.
type source struct {
	text   io.ReadSeeker
	sheets []xlsxtab.Sheet
	close  func() error
}

func noClose() error { return nil }

// resolve opens the underlying input, detects its format and character
// set, and returns a seekable UTF-8 text view of its content. Plain UTF-8
// files are streamed directly; everything else is converted in memory.
func (e *Extractor) resolve() (*source, error) {
	if e.reader != nil {
		if !e.slurped {
			raw, err := io.ReadAll(e.reader)
			if err != nil {
				return nil, fmt.Errorf("reading source: %w", err)
			}
			e.raw = raw
			e.slurped = true
		}
		return e.normalize(e.raw, format.DetectFromMagic(e.raw))
	}

	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", e.filename, err)
	}
	detected, err := format.DetectFromReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("detecting format of %s: %w", e.filename, err)
	}

	kind := detected
	if detected == format.Text && e.format != format.Text {
		// Content gave no signal; trust the extension.
		kind = e.format
	} else if detected != format.Text && e.format != format.Text && detected != e.format {
		e.warn(WarnFormatMismatch,
			fmt.Sprintf("%s has a %s extension but %s content", e.filename, e.format, detected))
	}

	if kind == format.Text {
		prefix := make([]byte, 512)
		n, rerr := f.ReadAt(prefix, 0)
		if rerr != nil && rerr != io.EOF {
			f.Close()
			return nil, fmt.Errorf("reading %s: %w", e.filename, rerr)
		}
		if decode.Detect(prefix[:n]) == decode.UTF8 {
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				f.Close()
				return nil, fmt.Errorf("seeking %s: %w", e.filename, err)
			}
			return &source{text: f, close: f.Close}, nil
		}
	}

	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.filename, err)
	}
	return e.normalize(raw, kind)
}

// normalize converts raw content of the given format into a UTF-8 text view.
func (e *Extractor) normalize(raw []byte, kind format.Format) (*source, error) {
	switch kind {
	case format.GZip:
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		inner, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompressing: %w", err)
		}
		// Compressed HTML still gets flattened.
		if format.DetectFromMagic(inner) == format.HTML {
			return e.normalize(inner, format.HTML)
		}
		return e.textSource(inner)

	case format.HTML:
		decoded, err := e.decodeText(raw)
		if err != nil {
			return nil, err
		}
		hr, err := htmltab.OpenReader(bytes.NewReader(decoded))
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		if hr.TableCount() == 0 {
			e.warn(WarnNoTables, "HTML source has no tables; using flattened document text")
		}
		return &source{text: strings.NewReader(hr.Text()), close: noClose}, nil

	case format.XLSX:
		xr, err := xlsxtab.OpenReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		defer xr.Close()
		return &source{
			text:   strings.NewReader(xr.Text()),
			sheets: xr.Sheets(),
			close:  noClose,
		}, nil

	default:
		return e.textSource(raw)
	}
}

func (e *Extractor) textSource(raw []byte) (*source, error) {
	decoded, err := e.decodeText(raw)
	if err != nil {
		return nil, err
	}
	return &source{text: bytes.NewReader(decoded), close: noClose}, nil
}

// decodeText converts raw bytes to UTF-8, sniffing the character set from
// the first 512 bytes.
func (e *Extractor) decodeText(raw []byte) ([]byte, error) {
	prefix := raw
	if len(prefix) > 512 {
		prefix = prefix[:512]
	}
	enc := decode.Detect(prefix)
	if enc == decode.Latin1 {
		e.warn(WarnCharset, "source is not valid UTF-8; decoded as Latin-1")
	}
	decoded, err := decode.Bytes(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s text: %w", enc, err)
	}
	return decoded, nil
}
