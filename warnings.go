package numtab

import (
	"fmt"
	"strings"
)

// Warning codes returned alongside extraction results.
const (
	// WarnCharset indicates the source was not valid UTF-8 and was decoded
	// with a fallback character set.
	WarnCharset = "charset"

	// WarnNoTables indicates an HTML source contained no table elements, so
	// extraction fell back to the flattened document text.
	WarnNoTables = "no-tables"

	// WarnFormatMismatch indicates the file content did not match what its
	// extension suggested; the content-based detection won.
	WarnFormatMismatch = "format-mismatch"
)

// Warning describes a non-fatal condition encountered during extraction.
// Warnings never stop an extraction; they flag results that may need a
// second look.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings renders a warning slice as a single readable string,
// one warning per line. It returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
