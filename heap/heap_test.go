package heap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

func TestNewSpanTooSmall(t *testing.T) {
	_, err := New(make([]byte, format.HeaderSize-1))
	require.ErrorIs(t, err, ErrArenaTooSmall)

	// Exactly one header is the smallest legal span: a zero-payload chunk.
	h, err := New(make([]byte, format.HeaderSize))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.Avail())
	assertInvariants(t, h)
}

func TestNewSingleFreeChunk(t *testing.T) {
	h := newTestHeap(t, 4096)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Chunks, 1)
	assert.Equal(t, uint32(4096-format.HeaderSize), snap.Chunks[0].Size)
	assert.False(t, snap.Chunks[0].InUse)
	assert.Equal(t, uint32(4096-format.HeaderSize), h.Avail())
	assertInvariants(t, h)
}

func TestAllocRoundsUpToAlignment(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref, payload, err := h.Alloc(13)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), h.SizeOf(ref))
	assert.Len(t, payload, 16)
	assertInvariants(t, h)
}

func TestAllocSizeOfRoundTrip(t *testing.T) {
	h := newTestHeap(t, 8192)

	for _, n := range []uint32{1, 8, 13, 100, 128, 511} {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)
		got := h.SizeOf(ref)
		assert.GreaterOrEqual(t, got, format.Align8U32(n),
			"SizeOf must cover the aligned request for Alloc(%d)", n)
	}
	assertInvariants(t, h)
}

// TestDemoScenario replays the 4096-byte 128/256/512 sequence: all three
// succeed at strictly increasing, non-overlapping offsets, and freeing them
// in any order coalesces back to the full usable capacity in one chunk.
func TestDemoScenario(t *testing.T) {
	orders := map[string][3]int{
		"forward":  {0, 1, 2},
		"reverse":  {2, 1, 0},
		"interior": {1, 0, 2},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			h := newTestHeap(t, 4096)

			refs := make([]Ref, 3)
			var ranges []liveRange
			for i, n := range []uint32{128, 256, 512} {
				ref, payload, err := h.Alloc(n)
				require.NoError(t, err)
				require.Len(t, payload, int(n))
				refs[i] = ref
				ranges = append(ranges, liveRange{ref, ref + h.SizeOf(ref)})
				if i > 0 {
					assert.Greater(t, refs[i], refs[i-1],
						"refs must strictly increase in address order")
				}
			}
			assertDisjoint(t, ranges)
			assertInvariants(t, h)

			for _, i := range order {
				require.NoError(t, h.Free(refs[i]))
				assertInvariants(t, h)
			}

			// Full coalescence: the entire usable capacity is one request.
			assert.Equal(t, uint32(4096-format.HeaderSize), h.Avail())
			ref, _, err := h.Alloc(4096 - format.HeaderSize)
			require.NoError(t, err)
			assert.Equal(t, Ref(format.HeaderSize), ref)
		})
	}
}

func TestAllocExhaustionLeavesChainUnchanged(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref1, _, err := h.Alloc(1024)
	require.NoError(t, err)

	before, err := h.Snapshot()
	require.NoError(t, err)

	_, _, err = h.Alloc(8192)
	require.ErrorIs(t, err, ErrNoSpace)

	after, err := h.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed alloc must not mutate the chain")

	// The heap stays usable for smaller requests.
	_, _, err = h.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, h.Free(ref1))
	assertInvariants(t, h)
}

func TestExhaustThenFreeRestoresFullCapacity(t *testing.T) {
	h := newTestHeap(t, 4096)

	var refs []Ref
	for {
		ref, _, err := h.Alloc(64)
		if err != nil {
			require.ErrorIs(t, err, ErrNoSpace)
			break
		}
		refs = append(refs, ref)
	}
	require.NotEmpty(t, refs)

	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}
	assertInvariants(t, h)

	// Everything coalesced back: one allocation takes the whole span.
	full := uint32(h.Size() - format.HeaderSize)
	assert.Equal(t, full, h.Avail())
	_, _, err := h.Alloc(full)
	require.NoError(t, err)
}

func TestZeroSizeAllocReturnsValidHandle(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref1, payload1, err := h.Alloc(0)
	require.NoError(t, err)
	assert.NotEqual(t, NilRef, ref1, "zero-byte alloc yields a real handle")
	assert.Empty(t, payload1)
	assert.Equal(t, uint32(0), h.SizeOf(ref1))

	ref2, _, err := h.Alloc(0)
	require.NoError(t, err)
	assert.NotEqual(t, ref1, ref2, "zero-byte handles are distinct")

	require.NoError(t, h.Free(ref1))
	require.NoError(t, h.Free(ref2))
	assertInvariants(t, h)
	assert.Equal(t, uint32(4096-format.HeaderSize), h.Avail())
}

func TestFreeNilRefIsNoOp(t *testing.T) {
	h := newTestHeap(t, 256)
	require.NoError(t, h.Free(NilRef))
	assert.Equal(t, 0, h.Stats().FreeCalls)
}

func TestFreeRejectsForgedAndStaleRefs(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref, _, err := h.Alloc(64)
	require.NoError(t, err)

	// Offsets that never came from Alloc.
	assert.ErrorIs(t, h.Free(ref+8), ErrBadRef)
	assert.ErrorIs(t, h.Free(7), ErrBadRef)

	require.NoError(t, h.Free(ref))
	// Double free is caught by the cleared tag word.
	assert.ErrorIs(t, h.Free(ref), ErrBadRef)
	assert.Equal(t, uint32(0), h.SizeOf(ref))
	assertInvariants(t, h)
}

func TestSizeOfNilRef(t *testing.T) {
	h := newTestHeap(t, 256)
	assert.Equal(t, uint32(0), h.SizeOf(NilRef))
}

func TestAvailInterleavedAllocFree(t *testing.T) {
	h := newTestHeap(t, 8192)

	a, _, err := h.Alloc(100)
	require.NoError(t, err)
	b, _, err := h.Alloc(200)
	require.NoError(t, err)
	require.NoError(t, h.Free(a))
	c, _, err := h.Alloc(50)
	require.NoError(t, err)
	require.NoError(t, h.Free(b))
	d, _, err := h.Alloc(1000)
	require.NoError(t, err)
	assertInvariants(t, h)

	for _, ref := range []Ref{c, d} {
		require.NoError(t, h.Free(ref))
		assertInvariants(t, h)
	}
	assert.Equal(t, uint32(8192-format.HeaderSize), h.Avail())
}

// TestRandomChurn drives a seeded alloc/free mix and checks the structural
// invariants plus outstanding-allocation disjointness after every operation.
func TestRandomChurn(t *testing.T) {
	h := newTestHeap(t, 64*1024)
	rng := rand.New(rand.NewSource(42))

	live := make(map[Ref]uint32)
	for i := 0; i < 2000; i++ {
		if len(live) == 0 || rng.Intn(100) < 60 {
			n := uint32(rng.Intn(512))
			ref, payload, err := h.Alloc(n)
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace)
				continue
			}
			require.Len(t, payload, int(h.SizeOf(ref)))
			_, dup := live[ref]
			require.False(t, dup, "ref %#x handed out twice", ref)
			live[ref] = h.SizeOf(ref)
		} else {
			for ref := range live {
				require.NoError(t, h.Free(ref))
				delete(live, ref)
				break
			}
		}
		assertInvariants(t, h)
	}

	ranges := make([]liveRange, 0, len(live))
	for ref, size := range live {
		ranges = append(ranges, liveRange{ref, ref + size})
	}
	assertDisjoint(t, ranges)

	for ref := range live {
		require.NoError(t, h.Free(ref))
	}
	assert.Equal(t, uint32(h.Size()-format.HeaderSize), h.Avail())
	assertInvariants(t, h)
}

func TestWalkDetectsCorruption(t *testing.T) {
	span := make([]byte, 4096)
	h, err := New(span)
	require.NoError(t, err)
	_, _, err = h.Alloc(64)
	require.NoError(t, err)

	// Smash the first chunk's next link so it no longer tiles.
	format.PutU32(span, format.NextFieldOffset, 12345)

	err = h.Walk(func(Chunk) bool { return true })
	assert.ErrorIs(t, err, ErrCorrupt)
	_, _, err = h.Alloc(8)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStatsCounters(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref, _, err := h.Alloc(64)
	require.NoError(t, err)
	_, _, err = h.Alloc(8192)
	require.ErrorIs(t, err, ErrNoSpace)
	require.NoError(t, h.Free(ref))

	st := h.Stats()
	assert.Equal(t, 2, st.AllocCalls)
	assert.Equal(t, 1, st.FailedAllocs)
	assert.Equal(t, 1, st.FreeCalls)
	assert.Equal(t, 1, st.SplitCount)
	assert.Equal(t, 1, st.CoalesceCount)
	assert.Equal(t, int64(64), st.BytesAlloced)
	assert.Equal(t, int64(64), st.BytesFreed)
}
