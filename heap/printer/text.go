package printer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/arenakit/heap"
)

var (
	styleInUse = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleFree  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// printText writes the snapshot in the classic heap-info layout: span line,
// available line, then one line per chunk in address order.
func (p *Printer) printText(snap heap.Snapshot) error {
	if _, err := fmt.Fprintf(p.w, "Heap span: %d bytes\n", snap.SpanSize); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "Available memory: %d bytes\n", snap.Avail); err != nil {
		return err
	}
	for _, c := range snap.Chunks {
		state := "free"
		if c.InUse {
			state = "inuse"
		}
		if p.opts.Color {
			if c.InUse {
				state = styleInUse.Render(state)
			} else {
				state = styleFree.Render(state)
			}
		}
		_, err := fmt.Fprintf(p.w, "Chunk: 0x%08x, size: %d, %s\n", c.Off, c.Size, state)
		if err != nil {
			return err
		}
	}
	return nil
}
