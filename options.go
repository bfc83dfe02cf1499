package numtab

import "github.com/numtab/numtab/scan"

// ExtractOptions holds configuration for data extraction.
type ExtractOptions struct {
	// Block detection
	minRows   int
	delimiter string
	columns   []int

	// Header metadata parsing
	headerDelimiter string
	headerIgnore    []string

	// Processing options
	unpack bool // Transpose the result so columns are the outer sequence
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		minRows:         10,
		delimiter:       "", // empty means any whitespace run
		columns:         nil, // nil means all columns
		headerDelimiter: "=",
		unpack:          false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		minRows:         o.minRows,
		delimiter:       o.delimiter,
		headerDelimiter: o.headerDelimiter,
		unpack:          o.unpack,
	}

	if o.columns != nil {
		newOpts.columns = make([]int, len(o.columns))
		copy(newOpts.columns, o.columns)
	}
	if o.headerIgnore != nil {
		newOpts.headerIgnore = make([]string, len(o.headerIgnore))
		copy(newOpts.headerIgnore, o.headerIgnore)
	}

	return newOpts
}

// scanConfig converts the options to a scan.Config.
func (o ExtractOptions) scanConfig() scan.Config {
	return scan.Config{
		MinRows:         o.minRows,
		Delimiter:       o.delimiter,
		Columns:         o.columns,
		HeaderDelimiter: o.headerDelimiter,
		HeaderIgnore:    o.headerIgnore,
	}
}
