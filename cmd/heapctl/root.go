package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/heap"
	"github.com/joshuapare/arenakit/heap/printer"
	"github.com/joshuapare/arenakit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect fixed-arena heap allocations",
	Long: `heapctl drives the arenakit fixed-arena allocator: it reserves a raw
memory span from the operating system, performs allocations against it, and
renders the resulting chunk chain for inspection.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Enabled: verbose,
			Level:   slog.LevelDebug,
		})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printerOptions derives renderer options from the global flags and the
// terminal state of stdout.
func printerOptions() printer.Options {
	opts := printer.Options{Format: printer.FormatText}
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.Color = !noColor && isatty.IsTerminal(os.Stdout.Fd())
	return opts
}

// printSnapshot renders the heap's current chain to stdout.
func printSnapshot(h *heap.Heap) error {
	if quiet {
		return nil
	}
	snap, err := h.Snapshot()
	if err != nil {
		return err
	}
	return printer.New(os.Stdout, printerOptions()).Print(snap)
}
