// Package heap implements a fixed-arena memory allocator over a single
// contiguous byte span.
//
// # Overview
//
// The allocator manages sub-allocations within one caller-provided span using
// an intrusive list of variable-sized chunks embedded directly in the span.
// Each chunk is a 16-byte header followed by its payload; headers link to the
// next chunk by span offset, and the chain tiles the span with no gaps. There
// is no separate free list: the chain is the sole index, and free chunks are
// found by a linear first-fit scan.
//
// # Usage Example
//
//	span, release, err := mmspan.Reserve(4096)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
//	h, err := heap.New(span)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := h.Alloc(128)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, free the chunk
//	err = h.Free(ref)
//
// # Allocation Policy
//
// Alloc rounds the request up to an 8-byte boundary and takes the first free
// chunk large enough (first-fit, never best-fit). If the chosen chunk leaves
// a remainder big enough to host its own header plus one alignment unit, the
// chunk is split and the tail becomes a new free chunk; smaller remainders
// are handed to the caller undivided. Free marks the chunk free, merges every
// maximal run of adjacent free chunks in one chain-wide pass, and recomputes
// the cached free-byte total from scratch.
//
// # References
//
// A Ref is the span offset of a chunk's payload, always header offset plus
// 16. Recovering the header from a Ref is an exact back-offset; no registry
// lookup is involved. Headers carry a sentinel tag word while allocated, so
// Free, SizeOf, and Realloc can reject forged or already-freed references.
// The tag is a cheap safety net, not a guarantee: passing arbitrary offsets
// remains undefined behavior by contract.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must serialize access
// externally, for example with one heap per worker or an external mutex.
// All operations are bounded, synchronous scans of the chunk chain; the
// arena never grows once exhausted.
package heap
