// Package model defines the shared data structures produced by data
// extraction: numeric matrices, header metadata, and (header, data)
// dataset pairs.
package model
