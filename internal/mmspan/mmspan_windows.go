//go:build windows

package mmspan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve commits n bytes of zero-initialized, page-aligned, readable-writable
// memory via VirtualAlloc and returns the span with a release function.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("mmspan: invalid span size %d", n)
	}
	addr, err := windows.VirtualAlloc(0, uintptr(n),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmspan: VirtualAlloc %d bytes: %w", n, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}
	return data, release, nil
}
