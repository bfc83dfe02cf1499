package model

// Dataset pairs a data block with the free-form header text that preceded
// it in the source. For a trailing header-only entry (text after the last
// block in a file) Data is an empty matrix.
type Dataset struct {
	// Header is the verbatim source text between the end of the previous
	// block (or the start of the file) and the start of this block,
	// including line terminators.
	Header string

	// Data holds the block's numeric payload, one row per source line.
	Data Matrix
}

// HasData reports whether the dataset carries a non-empty data block.
func (d Dataset) HasData() bool { return !d.Data.IsEmpty() }
