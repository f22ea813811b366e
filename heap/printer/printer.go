// Package printer renders read-only heap snapshots for diagnostics. It is a
// pure consumer of the heap data model: rendering never mutates the heap and
// operates only on the Snapshot value handed to it.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/arenakit/heap"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text, one line per chunk.
	FormatText Format = "text"

	// FormatJSON outputs the snapshot as indented JSON.
	FormatJSON Format = "json"
)

// Options controls rendering behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Color enables ANSI styling of chunk states (text format only).
	// Default: false
	Color bool
}

// Printer renders snapshots to a writer.
type Printer struct {
	w    io.Writer
	opts Options
}

// New creates a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return &Printer{w: w, opts: opts}
}

// Print renders the snapshot in the configured format.
func (p *Printer) Print(snap heap.Snapshot) error {
	switch p.opts.Format {
	case FormatText:
		return p.printText(snap)
	case FormatJSON:
		return p.printJSON(snap)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}
