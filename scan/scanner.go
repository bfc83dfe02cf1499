package scan

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/numtab/numtab/model"
)

// firstBlock records the in-progress candidate block during a streaming
// scan: where it starts in the stream and what shape its lines share.
type firstBlock struct {
	start int64
	shape lineShape
	found bool
}

// ScanFirst streams r line by line and returns the first data block of at
// least cfg.MinRows rows as a matrix. Scanning stops as soon as the block
// qualifies; r is then rewound to the block's starting byte offset and the
// block is read to its end. When a column selection is configured only the
// selected columns are returned, in selection order; otherwise the
// selection defaults to all columns of the detected width so that trailing
// delimiters do not add phantom columns.
//
// A source with no qualifying block yields an empty matrix, not an error.
func ScanFirst(r io.ReadSeeker, cfg Config) (model.Matrix, error) {
	blk, _, err := scanStream(r, cfg, false)
	if err != nil {
		return model.Matrix{}, err
	}
	if !blk.found {
		return model.Matrix{}, nil
	}

	if _, err := r.Seek(blk.start, io.SeekStart); err != nil {
		return model.Matrix{}, fmt.Errorf("seeking to data block: %w", err)
	}

	columns := cfg.Columns
	if columns == nil {
		columns = make([]int, blk.shape.cols)
		for i := range columns {
			columns[i] = i
		}
	}
	return ReadTable(r, cfg.Delimiter, columns)
}

// ScanHeader streams r and returns key/value metadata parsed from lines of
// the form "key <delimiter> value" ahead of (and inside) the first data
// block. Keys matching a configured ignore prefix are skipped. The scan
// stops where ScanFirst would stop: once the first block qualifies.
func ScanHeader(r io.Reader, cfg Config) (*model.HeaderMap, error) {
	_, headers, err := scanStream(r, cfg, true)
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// scanStream is the shared line-by-line pass. Every line runs through two
// independent classifications: an optional header key/value split, and the
// numeric shape check that drives candidate block tracking. The pass ends
// at EOF or as soon as the candidate block reaches cfg.MinRows rows.
func scanStream(r io.Reader, cfg Config, collectHeaders bool) (firstBlock, *model.HeaderMap, error) {
	br := bufio.NewReader(r)
	headers := model.NewHeaderMap()
	min := minimumShape(cfg.Columns)

	var blk firstBlock
	var pos int64
	inBlock := false
	rows := 0

	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			lineStart := pos
			pos += int64(len(line))

			if collectHeaders {
				parseHeaderLine(headers, line, cfg)
			}

			shape := classifyLine(line, cfg.Delimiter, cfg.Columns)
			switch {
			case shape.less(min):
				inBlock = false
			case !inBlock || shape != blk.shape:
				// A new candidate starts here, whether because no
				// candidate was active or because the shape changed.
				blk.start = lineStart
				blk.shape = shape
				inBlock = true
				rows = 1
			default:
				rows++
			}
			if inBlock && rows >= cfg.MinRows {
				blk.found = true
				break
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return firstBlock{}, nil, fmt.Errorf("reading line: %w", rerr)
		}
	}

	return blk, headers, nil
}

// parseHeaderLine attempts to interpret a line as a "key <delim> value"
// pair and upserts it into headers. The line must split into exactly two
// non-blank parts and the key must not match an ignore prefix.
func parseHeaderLine(headers *model.HeaderMap, line string, cfg Config) {
	parts := strings.Split(line, cfg.headerDelimiter())
	if len(parts) != 2 {
		return
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" || value == "" {
		return
	}
	for _, prefix := range cfg.HeaderIgnore {
		if strings.HasPrefix(key, prefix) {
			return
		}
	}
	headers.Set(key, model.ParseHeaderValue(value))
}
