// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// maxLineLen bounds a single corpus line. Review text can run long but a
// megabyte per line is far beyond anything observed in real corpora.
const maxLineLen = 1 << 20

// NewReader wraps r with transparent gzip decompression when the stream
// begins with the gzip magic bytes. Plain-text streams pass through
// unchanged. The caller retains ownership of r.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	magic, err := br.Peek(2)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Empty or single-byte stream: valid, just not compressed.
			return br, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	if magic[0] != 0x1f || magic[1] != 0x8b {
		return br, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return zr, nil
}

// NewScanner creates a line scanner over the (possibly decompressed) stream
// with the corpus line-length bound applied.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	return sc
}
