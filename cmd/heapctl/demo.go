package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/heap"
	"github.com/joshuapare/arenakit/internal/logger"
	"github.com/joshuapare/arenakit/internal/mmspan"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	var spanSize int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the classic allocate/describe/free walkthrough",
		Long: `The demo command reserves an arena span from the operating system,
allocates three blocks of 128, 256, and 512 bytes, renders the chunk chain,
frees all three blocks, and renders the chain again to show full coalescence.

Example:
  heapctl demo
  heapctl demo --size 8192 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(spanSize)
		},
	}
	cmd.Flags().IntVar(&spanSize, "size", 4096, "Arena span size in bytes")
	return cmd
}

func runDemo(spanSize int) error {
	logger.L.Debug("reserving arena span", "bytes", spanSize)
	span, release, err := mmspan.Reserve(spanSize)
	if err != nil {
		return fmt.Errorf("reserve arena span: %w", err)
	}
	defer release() //nolint:errcheck // best-effort unmap on exit

	h, err := heap.New(span)
	if err != nil {
		return fmt.Errorf("initialize heap: %w", err)
	}

	var refs []heap.Ref
	for _, n := range []uint32{128, 256, 512} {
		ref, _, err := h.Alloc(n)
		if err != nil {
			return fmt.Errorf("alloc %d bytes: %w", n, err)
		}
		printVerbose("Allocated %d bytes at 0x%08x\n", n, ref)
		refs = append(refs, ref)
	}

	if err := printSnapshot(h); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := h.Free(ref); err != nil {
			return fmt.Errorf("free 0x%08x: %w", ref, err)
		}
		printVerbose("Freed 0x%08x\n", ref)
	}

	return printSnapshot(h)
}
