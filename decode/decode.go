// Package decode provides character-set detection and decoding for input
// files. Instrument software frequently writes UTF-16 (Windows tools) or
// Latin-1 (legacy exports); everything downstream expects UTF-8, so input
// bytes are normalized before scanning.
package decode

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies a detected character encoding.
type Encoding int

const (
	// UTF8 is plain UTF-8 without a byte order mark; no transformation
	// is needed.
	UTF8 Encoding = iota
	// UTF8BOM is UTF-8 with a leading byte order mark.
	UTF8BOM
	// UTF16LE is little-endian UTF-16 with a byte order mark.
	UTF16LE
	// UTF16BE is big-endian UTF-16 with a byte order mark.
	UTF16BE
	// Latin1 is assumed for content that is not valid UTF-8.
	Latin1
)

// String returns the string representation of the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "UTF-8 BOM"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case Latin1:
		return "Latin-1"
	default:
		return "UTF-8"
	}
}

// Detect determines the encoding of content from its leading bytes: byte
// order marks first, then UTF-8 validity with Latin-1 as the fallback.
// A few hundred bytes of prefix are enough in practice.
func Detect(prefix []byte) Encoding {
	switch {
	case len(prefix) >= 3 && prefix[0] == 0xEF && prefix[1] == 0xBB && prefix[2] == 0xBF:
		return UTF8BOM
	case len(prefix) >= 2 && prefix[0] == 0xFF && prefix[1] == 0xFE:
		return UTF16LE
	case len(prefix) >= 2 && prefix[0] == 0xFE && prefix[1] == 0xFF:
		return UTF16BE
	}

	// The prefix may end mid-rune; ignore an incomplete trailing sequence
	// before judging validity.
	trimmed := prefix
	for i := 0; i < 3 && len(trimmed) > 0; i++ {
		if r, _ := utf8.DecodeLastRune(trimmed); r != utf8.RuneError {
			break
		}
		trimmed = trimmed[:len(trimmed)-1]
	}
	if utf8.Valid(trimmed) {
		return UTF8
	}
	return Latin1
}

// Bytes decodes data to UTF-8 according to enc. UTF8 input is returned
// unchanged.
func Bytes(data []byte, enc Encoding) ([]byte, error) {
	dec := decoder(enc)
	if dec == nil {
		return data, nil
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", enc, err)
	}
	return out, nil
}

// Reader wraps r so that reads yield UTF-8 according to enc.
func Reader(r io.Reader, enc Encoding) io.Reader {
	dec := decoder(enc)
	if dec == nil {
		return r
	}
	return transform.NewReader(r, dec)
}

// decoder returns the transformer for enc, or nil when no transformation
// is needed.
func decoder(enc Encoding) transform.Transformer {
	var e encoding.Encoding
	switch enc {
	case UTF8BOM:
		e = unicode.UTF8BOM
	case UTF16LE:
		e = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case UTF16BE:
		e = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case Latin1:
		e = charmap.ISO8859_1
	default:
		return nil
	}
	return e.NewDecoder()
}
