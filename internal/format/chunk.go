package format

import "fmt"

// Chunk is the decoded form of a single allocation header (free or in-use)
// within an arena span.
//
// Chunk header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Payload size in bytes. Excludes the header itself.
//	0x04    4     Span offset of the next header, or NilOff if last.
//	0x08    4     Flags. Bit 0 set => in use.
//	0x0C    4     Tag word. LiveTag while allocated, zero otherwise.
type Chunk struct {
	Off   uint32 // Offset of the header within the span
	Size  uint32 // Payload size in bytes
	Next  uint32 // Offset of the next header, or NilOff
	InUse bool   // True while the payload is handed out
	Tag   uint32 // Sentinel word, LiveTag while allocated
}

// End returns the span offset of the first byte past this chunk's payload.
func (c Chunk) End() uint32 {
	return c.Off + HeaderSize + c.Size
}

// ParseChunk decodes the header at off and validates it against the span
// bounds and the tiling invariant: a non-nil next link must point exactly at
// the byte following this chunk's header and payload.
func ParseChunk(b []byte, off uint32) (Chunk, error) {
	if int64(off)+HeaderSize > int64(len(b)) {
		return Chunk{}, fmt.Errorf("chunk at %#x: %w", off, ErrTruncated)
	}
	c := Chunk{
		Off:   off,
		Size:  ReadU32(b, int(off)+SizeFieldOffset),
		Next:  ReadU32(b, int(off)+NextFieldOffset),
		InUse: ReadU32(b, int(off)+FlagsFieldOffset)&FlagInUse != 0,
		Tag:   ReadU32(b, int(off)+TagFieldOffset),
	}
	if int64(c.End()) > int64(len(b)) {
		return Chunk{}, fmt.Errorf("chunk at %#x: declared size %d overruns span: %w",
			off, c.Size, ErrTruncated)
	}
	if c.Next != NilOff && c.Next != c.End() {
		return Chunk{}, fmt.Errorf("chunk at %#x: next %#x != end %#x: %w",
			off, c.Next, c.End(), ErrBadLink)
	}
	return c, nil
}

// WriteChunk encodes the header fields at c.Off. The caller must ensure the
// header lies within the span; ParseChunk enforces this on the read side.
func WriteChunk(b []byte, c Chunk) {
	var flags uint32
	if c.InUse {
		flags |= FlagInUse
	}
	PutU32(b, int(c.Off)+SizeFieldOffset, c.Size)
	PutU32(b, int(c.Off)+NextFieldOffset, c.Next)
	PutU32(b, int(c.Off)+FlagsFieldOffset, flags)
	PutU32(b, int(c.Off)+TagFieldOffset, c.Tag)
}
