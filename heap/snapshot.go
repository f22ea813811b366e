package heap

// Chunk is the read-only view of one chain entry, exposed for diagnostics.
type Chunk struct {
	Off   uint32 `json:"offset"` // Header offset within the span
	Size  uint32 `json:"size"`   // Payload size in bytes
	InUse bool   `json:"in_use"` // True while handed out to a caller
}

// Snapshot is a point-in-time copy of the observable heap state. It is the
// boundary handed to diagnostic renderers: a pure value, no aliasing of the
// span, no mutation.
type Snapshot struct {
	SpanSize int     `json:"span_size"` // Total span length, headers included
	Avail    uint32  `json:"avail"`     // Cached free payload total
	Chunks   []Chunk `json:"chunks"`    // Chain entries in address order
}

// Snapshot captures the current chain state in address order.
func (h *Heap) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		SpanSize: len(h.data),
		Avail:    h.avail,
	}
	err := h.Walk(func(c Chunk) bool {
		snap.Chunks = append(snap.Chunks, c)
		return true
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
