// Package format provides input format detection for the numtab library.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Text indicates a plain text data file. Unrecognized content is
	// treated as Text, since instrument output rarely has a signature.
	Text Format = iota
	// GZip indicates a gzip-compressed data file.
	GZip
	// HTML indicates an HTML document.
	HTML
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case GZip:
		return "GZip"
	case HTML:
		return "HTML"
	case XLSX:
		return "XLSX"
	default:
		return "Text"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case GZip:
		return ".gz"
	case HTML:
		return ".html"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".gz", ".gzip":
		return GZip
	case ".html", ".htm":
		return HTML
	case ".xlsx":
		return XLSX
	default:
		return Text
	}
}

// DetectFromMagic checks leading bytes to determine format. This is more
// reliable than extension-based detection. Content without a recognized
// signature is Text.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Text
	}

	// gzip magic: \x1f\x8b
	if data[0] == 0x1F && data[1] == 0x8B {
		return GZip
	}

	// ZIP magic (XLSX is a ZIP archive): PK\x03\x04. Whether the archive
	// really is a workbook needs DetectFromReader; plain ZIP data is not
	// parseable as text either way.
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return XLSX
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Text
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// DetectFromReader inspects content to determine format, distinguishing a
// real XLSX workbook from other ZIP archives.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Text, err
	}
	magic = magic[:n]

	if len(magic) >= 2 && magic[0] == 0x1F && magic[1] == 0x8B {
		return GZip, nil
	}

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		if isWorkbook(r, size) {
			return XLSX, nil
		}
		return Text, nil
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	return Text, nil
}

// isWorkbook inspects a ZIP archive for spreadsheet content markers.
func isWorkbook(r io.ReaderAt, size int64) bool {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return true
		}
	}
	return false
}
