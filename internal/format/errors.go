package format

import "errors"

var (
	// ErrTruncated indicates the span lacked the bytes required for a header
	// or its declared payload.
	ErrTruncated = errors.New("format: truncated span")
	// ErrBadLink indicates a next link that does not tile onto the byte
	// immediately following the chunk's header and payload.
	ErrBadLink = errors.New("format: next link breaks chunk tiling")
)
