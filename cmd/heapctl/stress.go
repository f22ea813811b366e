package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/heap"
	"github.com/joshuapare/arenakit/internal/logger"
	"github.com/joshuapare/arenakit/internal/mmspan"
)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

func newStressCmd() *cobra.Command {
	var (
		spanSize int
		ops      int
		seed     int64
		maxAlloc int
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Drive a randomized alloc/free mix against one arena",
		Long: `The stress command churns an arena with a seeded random sequence of
allocations and frees, then reports allocator counters and the final chain.
Useful for eyeballing fragmentation behavior under different span sizes.

Example:
  heapctl stress --ops 10000
  heapctl stress --size 65536 --seed 7 --max-alloc 1024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(spanSize, ops, seed, maxAlloc)
		},
	}
	cmd.Flags().IntVar(&spanSize, "size", 65536, "Arena span size in bytes")
	cmd.Flags().IntVar(&ops, "ops", 10000, "Number of operations to run")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&maxAlloc, "max-alloc", 512, "Maximum allocation size in bytes")
	return cmd
}

func runStress(spanSize, ops int, seed int64, maxAlloc int) error {
	span, release, err := mmspan.Reserve(spanSize)
	if err != nil {
		return fmt.Errorf("reserve arena span: %w", err)
	}
	defer release() //nolint:errcheck // best-effort unmap on exit

	h, err := heap.New(span)
	if err != nil {
		return fmt.Errorf("initialize heap: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	var live []heap.Ref
	noSpace := 0

	for i := 0; i < ops; i++ {
		if len(live) == 0 || rng.Intn(100) < 60 {
			n := uint32(rng.Intn(maxAlloc + 1))
			ref, _, err := h.Alloc(n)
			if errors.Is(err, heap.ErrNoSpace) {
				noSpace++
				continue
			}
			if err != nil {
				return fmt.Errorf("alloc %d bytes: %w", n, err)
			}
			live = append(live, ref)
		} else {
			j := rng.Intn(len(live))
			if err := h.Free(live[j]); err != nil {
				return fmt.Errorf("free 0x%08x: %w", live[j], err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	logger.L.Debug("churn complete", "live", len(live), "no_space", noSpace)

	st := h.Stats()
	printInfo("Operations: %d (%d exhausted)\n", ops, noSpace)
	printInfo("Allocs: %d (%d failed), frees: %d\n", st.AllocCalls, st.FailedAllocs, st.FreeCalls)
	printInfo("Splits: %d, coalesces: %d\n", st.SplitCount, st.CoalesceCount)
	printInfo("Bytes allocated: %d, freed: %d\n", st.BytesAlloced, st.BytesFreed)
	printInfo("Outstanding: %d allocations, %d bytes available\n", len(live), h.Avail())

	if jsonOut || verbose {
		return printSnapshot(h)
	}
	return nil
}
