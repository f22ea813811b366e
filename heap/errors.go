package heap

import "errors"

var (
	// ErrNoSpace indicates that no free chunk large enough was found.
	// The heap remains usable for smaller requests.
	ErrNoSpace = errors.New("heap: no free chunk large enough")

	// ErrArenaTooSmall indicates New was called with a span too small to
	// hold a single chunk header, or larger than the addressable maximum.
	ErrArenaTooSmall = errors.New("heap: unusable span size")

	// ErrBadRef indicates a reference that does not point at a live
	// allocated chunk on this heap.
	ErrBadRef = errors.New("heap: bad chunk reference")

	// ErrCorrupt indicates the chunk chain violated the tiling or bounds
	// invariants during a traversal. The heap is unrecoverable.
	ErrCorrupt = errors.New("heap: chunk chain corrupted")
)
