//go:build unix

package mmspan

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve maps n bytes of zero-initialized, page-aligned, readable-writable
// anonymous memory and returns the span with a release function.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("mmspan: invalid span size %d", n)
	}
	data, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmspan: mmap %d bytes: %w", n, err)
	}
	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
