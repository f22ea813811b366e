// Package format houses the low-level chunk header layout for arena spans.
// The goal is to keep the byte-level encoding focused and allocation-free so
// the heap package can orchestrate the data in a more ergonomic form.
package format

const (
	// HeaderSize is the number of bytes used by the chunk header preceding
	// every payload (free or in-use) within an arena span.
	HeaderSize = 16

	// Alignment is the byte boundary payload sizes are rounded up to.
	// Every non-final chunk payload is a multiple of this value.
	Alignment = 8

	// AlignmentMask is Alignment - 1, used by the align helpers.
	AlignmentMask = Alignment - 1

	// NilOff marks the absence of a successor chunk in the next field.
	// Offset 0xFFFFFFFF can never start a header because headers need
	// HeaderSize bytes of room below the span end.
	NilOff = uint32(0xFFFFFFFF)

	// LiveTag is the sentinel written into the tag word of every in-use
	// header. It is cleared when the chunk is freed, which lets the heap
	// reject forged or stale handles cheaply. Reads as "ARNK" on disk.
	LiveTag = uint32(0x4B4E5241)

	// FlagInUse is set in the flags word while the payload is handed out.
	FlagInUse = uint32(0x1)
)

// Chunk header field offsets, relative to the header start.
const (
	// SizeFieldOffset holds the payload byte count (excludes the header).
	SizeFieldOffset = 0

	// NextFieldOffset holds the span offset of the next header, or NilOff.
	NextFieldOffset = 4

	// FlagsFieldOffset holds FlagInUse and reserved bits.
	FlagsFieldOffset = 8

	// TagFieldOffset holds LiveTag while the chunk is allocated.
	TagFieldOffset = 12
)

// MaxSpanSize caps the backing span length. Offsets are uint32 and the
// allocator mirrors the original format's 2GB addressing limit, so spans
// beyond int32 range are rejected at initialization.
const MaxSpanSize = 0x7FFFFFFF
