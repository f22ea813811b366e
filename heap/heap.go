package heap

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Ref is a caller-visible allocation handle: the span offset of a chunk's
// payload. The owning header always sits exactly format.HeaderSize bytes
// below it.
type Ref = uint32

// NilRef is the empty handle. The first payload in any span starts at
// format.HeaderSize, so offset zero never denotes a live allocation.
const NilRef Ref = 0

// minSplitRemainder is the smallest leftover (in payload bytes of the chosen
// chunk) worth carving into a separate free chunk: one header plus one
// alignment unit. Anything smaller stays with the allocation as slack.
const minSplitRemainder = format.HeaderSize + format.Alignment

// Stats holds operation counters for instrumentation and tests.
type Stats struct {
	AllocCalls    int   // Total Alloc() calls
	FreeCalls     int   // Total Free() calls (NilRef no-ops excluded)
	FailedAllocs  int   // Allocs that returned ErrNoSpace
	SplitCount    int   // Chunk splits performed by Alloc
	CoalesceCount int   // Adjacent-free merges performed by Free
	BytesAlloced  int64 // Total payload bytes handed out (including slack)
	BytesFreed    int64 // Total payload bytes returned
}

// Heap describes one allocator instance over a single contiguous span.
// The chunk chain starts at offset 0 and owns the entire span.
type Heap struct {
	data  []byte
	avail uint32 // cached sum of free payload sizes
	stats Stats
}

// New initializes a heap over span by writing one free chunk covering the
// whole span. The span must be able to hold at least one header and must
// not exceed the addressable maximum.
func New(span []byte) (*Heap, error) {
	if len(span) < format.HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrArenaTooSmall, len(span), format.HeaderSize)
	}
	if len(span) > format.MaxSpanSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum %d",
			ErrArenaTooSmall, len(span), format.MaxSpanSize)
	}
	h := &Heap{data: span}
	size := uint32(len(span) - format.HeaderSize)
	format.WriteChunk(span, format.Chunk{
		Off:  0,
		Size: size,
		Next: format.NilOff,
	})
	h.avail = size
	return h, nil
}

// Size returns the total span length in bytes, headers included.
func (h *Heap) Size() int {
	return len(h.data)
}

// Avail returns the cached total of free payload bytes. It is maintained
// symmetrically: Alloc decrements it and Free recomputes it from the chain.
func (h *Heap) Avail() uint32 {
	return h.avail
}

// Stats returns a copy of the operation counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// Alloc hands out n bytes of payload from the first free chunk that fits.
//
// The request is rounded up to an 8-byte boundary. A zero-byte request is
// legal and returns a valid, distinguishable zero-length handle. When no
// free chunk is large enough, Alloc returns ErrNoSpace and the chain is
// left untouched; the heap never grows itself.
func (h *Heap) Alloc(n uint32) (Ref, []byte, error) {
	h.stats.AllocCalls++

	if n > format.MaxSpanSize {
		h.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}
	need := format.Align8U32(n)

	// First-fit scan in address order. The first free chunk that fits is
	// taken even if a tighter fit exists later in the chain.
	var c format.Chunk
	off := uint32(0)
	for {
		var err error
		c, err = format.ParseChunk(h.data, off)
		if err != nil {
			return NilRef, nil, fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		if !c.InUse && c.Size >= need {
			break
		}
		if c.Next == format.NilOff {
			h.stats.FailedAllocs++
			return NilRef, nil, ErrNoSpace
		}
		off = c.Next
	}

	if rem := c.Size - need; rem >= minSplitRemainder {
		// Split: shrink to the request and materialize a free chunk
		// owning the remaining bytes, spliced in right after.
		tailOff := off + format.HeaderSize + need
		format.WriteChunk(h.data, format.Chunk{
			Off:  tailOff,
			Size: rem - format.HeaderSize,
			Next: c.Next,
		})
		c.Size = need
		c.Next = tailOff
		h.stats.SplitCount++
		h.avail -= need + format.HeaderSize
	} else {
		// Remainder too small to host a usable free chunk: the caller
		// gets the slack and the chunk stays whole.
		h.avail -= c.Size
	}

	c.InUse = true
	c.Tag = format.LiveTag
	format.WriteChunk(h.data, c)
	h.stats.BytesAlloced += int64(c.Size)

	ref := off + format.HeaderSize
	payload := h.data[ref : ref+c.Size : ref+c.Size]
	return ref, payload, nil
}

// Free returns the chunk owning ref to the free pool. Freeing NilRef is a
// no-op. After marking the chunk free, Free merges every maximal run of
// adjacent free chunks in one chain-wide pass, then recomputes the cached
// free total from scratch.
func (h *Heap) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}
	h.stats.FreeCalls++

	c, err := h.chunkForRef(ref)
	if err != nil {
		return err
	}
	c.InUse = false
	c.Tag = 0
	format.WriteChunk(h.data, c)
	h.stats.BytesFreed += int64(c.Size)

	if err := h.coalesce(); err != nil {
		return err
	}
	return h.recomputeAvail()
}

// SizeOf returns the payload size stored for ref, which may exceed the
// originally requested size by alignment or absorbed slack. It returns 0
// for NilRef and for references that do not resolve to a live chunk.
func (h *Heap) SizeOf(ref Ref) uint32 {
	if ref == NilRef {
		return 0
	}
	c, err := h.chunkForRef(ref)
	if err != nil {
		return 0
	}
	return c.Size
}

// chunkForRef recovers the owning header by back-offsetting one header width
// from ref and validates that it denotes a live allocated chunk. The tag
// check rejects forged references and double frees.
func (h *Heap) chunkForRef(ref Ref) (format.Chunk, error) {
	if ref < format.HeaderSize || ref%format.Alignment != 0 {
		return format.Chunk{}, fmt.Errorf("%w: %#x", ErrBadRef, ref)
	}
	c, err := format.ParseChunk(h.data, ref-format.HeaderSize)
	if err != nil {
		return format.Chunk{}, fmt.Errorf("%w: %#x", ErrBadRef, ref)
	}
	if !c.InUse || c.Tag != format.LiveTag {
		return format.Chunk{}, fmt.Errorf("%w: %#x not a live allocation", ErrBadRef, ref)
	}
	return c, nil
}

// coalesce walks the whole chain once, absorbing each free chunk's free
// successors into it. Because the scan is chain-wide it also repairs any
// pre-existing un-coalesced runs, not just the one around the last free.
func (h *Heap) coalesce() error {
	off := uint32(0)
	for off != format.NilOff {
		c, err := format.ParseChunk(h.data, off)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		if !c.InUse && c.Next != format.NilOff {
			next, err := format.ParseChunk(h.data, c.Next)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrCorrupt, err)
			}
			if !next.InUse {
				// Absorb the successor's header and payload, then
				// stay on this chunk so the whole run collapses.
				c.Size += format.HeaderSize + next.Size
				c.Next = next.Next
				format.WriteChunk(h.data, c)
				h.stats.CoalesceCount++
				continue
			}
		}
		off = c.Next
	}
	return nil
}

// recomputeAvail rebuilds the cached free total from the chain. One pass
// per free; the chain length is bounded by span size over minimum chunk
// size.
func (h *Heap) recomputeAvail() error {
	var avail uint32
	off := uint32(0)
	for off != format.NilOff {
		c, err := format.ParseChunk(h.data, off)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		if !c.InUse {
			avail += c.Size
		}
		off = c.Next
	}
	h.avail = avail
	return nil
}

// Walk calls fn for each chunk in address order, stopping early if fn
// returns false. The traversal is bounds-validated; a broken link yields
// ErrCorrupt.
func (h *Heap) Walk(fn func(c Chunk) bool) error {
	off := uint32(0)
	for off != format.NilOff {
		c, err := format.ParseChunk(h.data, off)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		if !fn(Chunk{Off: c.Off, Size: c.Size, InUse: c.InUse}) {
			return nil
		}
		off = c.Next
	}
	return nil
}
