package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestHeap creates a heap over a fresh zeroed span of spanSize bytes.
func newTestHeap(t testing.TB, spanSize int) *Heap {
	t.Helper()
	h, err := New(make([]byte, spanSize))
	require.NoError(t, err)
	return h
}

// assertInvariants checks the structural invariants that must hold at every
// quiescent point:
//   - chunks tile the span: each next header starts at the previous end,
//     the first chunk starts at offset 0, the last ends at the span end
//   - every non-final chunk's payload size is a multiple of the alignment
//   - no two adjacent chunks are both free (coalescing completeness)
//   - the cached avail equals the sum of free payload sizes
func assertInvariants(t testing.TB, h *Heap) {
	t.Helper()

	snap, err := h.Snapshot()
	require.NoError(t, err)
	require.NotEmpty(t, snap.Chunks, "chain must hold at least one chunk")
	require.Equal(t, uint32(0), snap.Chunks[0].Off, "chain must start at span base")

	var free uint32
	for i, c := range snap.Chunks {
		if !c.InUse {
			free += c.Size
		}
		end := c.Off + format.HeaderSize + c.Size
		if i+1 < len(snap.Chunks) {
			next := snap.Chunks[i+1]
			require.Equal(t, end, next.Off,
				"chunk at %#x must tile onto its successor", c.Off)
			require.Zero(t, c.Size%format.Alignment,
				"non-final chunk at %#x has unaligned size %d", c.Off, c.Size)
			if !c.InUse {
				require.True(t, next.InUse,
					"adjacent free chunks at %#x and %#x", c.Off, next.Off)
			}
		} else {
			require.Equal(t, snap.SpanSize, int(end),
				"last chunk must end at the span end")
		}
	}
	require.Equal(t, free, snap.Avail, "avail must equal the free payload sum")
}

// liveRange is a [start, end) payload byte range of an outstanding allocation.
type liveRange struct {
	start uint32
	end   uint32
}

// assertDisjoint checks that no two outstanding allocations overlap.
func assertDisjoint(t testing.TB, ranges []liveRange) {
	t.Helper()
	for i := range ranges {
		for j := i + 1; j < len(ranges); j++ {
			a, b := ranges[i], ranges[j]
			overlap := a.start < b.end && b.start < a.end
			require.False(t, overlap,
				"allocations [%#x,%#x) and [%#x,%#x) overlap",
				a.start, a.end, b.start, b.end)
		}
	}
}
