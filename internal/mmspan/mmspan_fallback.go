//go:build !unix && !windows

package mmspan

import "fmt"

// Reserve falls back to the Go heap when no platform mapping is available.
// The span is zeroed but page alignment is best-effort only.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("mmspan: invalid span size %d", n)
	}
	return make([]byte, n), func() error { return nil }, nil
}
