// Package scan implements detection and extraction of numeric data blocks
// in text sources that mix free-form header text with tabular data.
//
// A data block is a maximal run of consecutive lines that all tokenize to
// the same number of columns with every required column parsing as a
// float, at least Config.MinRows lines long. Two strategies are provided:
//
//   - ScanFirst streams a source line by line and stops at the first
//     qualifying block. Memory use is bounded and the tail of the file is
//     never read once a block is found.
//
//   - Index loads an entire source and partitions it into an ordered
//     sequence of (header text, data block) datasets, covering the whole
//     file including trailing text after the last block.
//
// Lines that fail to parse are never errors; they are simply not part of
// a block. A source with no qualifying block yields an empty result.
package scan
