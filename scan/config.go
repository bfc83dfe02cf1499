package scan

// Config holds block detection parameters.
type Config struct {
	// Minimum number of rows for a qualifying data block.
	MinRows int

	// Column delimiter for data lines. Empty means any whitespace run.
	// Only the streaming scanner honors an explicit delimiter; the
	// indexer always splits on whitespace.
	Delimiter string

	// Columns selects which columns to extract, in output order and with
	// duplicates preserved. Negative indices count from the end of the
	// row in the streaming scanner; the indexer resolves every index
	// modulo the block width. Nil selects all detected columns.
	Columns []int

	// Delimiter for header key/value lines, e.g. "=" in "qmax = 10".
	HeaderDelimiter string

	// Header lines whose key starts with any of these prefixes are
	// skipped.
	HeaderIgnore []string
}

// DefaultConfig returns default detection parameters.
func DefaultConfig() Config {
	return Config{
		MinRows:         10,
		HeaderDelimiter: "=",
	}
}

// headerDelimiter returns the configured header delimiter, defaulting to
// "=" when the zero value of Config is used directly.
func (c Config) headerDelimiter() string {
	if c.HeaderDelimiter == "" {
		return "="
	}
	return c.HeaderDelimiter
}
