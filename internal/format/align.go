package format

// Alignment utilities for arena chunk sizes. The allocator requires payload
// sizes to be aligned to 8-byte boundaries so headers always start aligned.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(0)  = 0
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// Align8U32 returns n aligned up to the next 8-byte boundary.
// uint32 version for use in allocator code. The caller must ensure n is
// small enough not to wrap (the heap package guards against this before
// calling).
func Align8U32(n uint32) uint32 {
	return (n + AlignmentMask) & ^uint32(AlignmentMask)
}
