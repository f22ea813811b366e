package heap

import "github.com/joshuapare/arenakit/internal/format"

// Realloc resizes the allocation at ref to n bytes, always against this
// heap's own chain, never an ambient allocator.
//
// A NilRef behaves like Alloc(n). A zero n frees ref and returns NilRef.
// If the chunk already holds the aligned request, the same ref is returned
// unchanged: there is no shrink-in-place and no split-back. Otherwise a new
// chunk is allocated, min(old, new) payload bytes are copied, and the old
// chunk is freed. If that allocation fails, the original chunk and its
// contents are untouched and ref remains valid.
func (h *Heap) Realloc(ref Ref, n uint32) (Ref, []byte, error) {
	if ref == NilRef {
		return h.Alloc(n)
	}
	if n == 0 {
		if err := h.Free(ref); err != nil {
			return NilRef, nil, err
		}
		return NilRef, nil, nil
	}

	c, err := h.chunkForRef(ref)
	if err != nil {
		return NilRef, nil, err
	}
	if n <= format.MaxSpanSize && c.Size >= format.Align8U32(n) {
		return ref, h.data[ref : ref+c.Size : ref+c.Size], nil
	}

	newRef, newPayload, err := h.Alloc(n)
	if err != nil {
		return NilRef, nil, err
	}
	copy(newPayload, h.data[ref:ref+c.Size])
	if err := h.Free(ref); err != nil {
		return NilRef, nil, err
	}
	return newRef, newPayload, nil
}

// Calloc allocates count*size bytes of zeroed payload from this heap. The
// multiplication is overflow-checked; a product beyond the addressable
// maximum reports ErrNoSpace.
func (h *Heap) Calloc(count, size uint32) (Ref, []byte, error) {
	if size != 0 && count > format.MaxSpanSize/size {
		h.stats.AllocCalls++
		h.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}
	ref, payload, err := h.Alloc(count * size)
	if err != nil {
		return NilRef, nil, err
	}
	// Reused chunks carry stale payload bytes.
	clear(payload)
	return ref, payload, nil
}
