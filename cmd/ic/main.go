// The ic tool runs the registered example programs of the runtime
// library, reports garbage-collector statistics, and offers an
// interactive shell for constructing and showing values by hand.
// Run "ic help" for a list of commands.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/icrt/ic/internal/config"
	"github.com/icrt/ic/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	configPath string
	gcThresh   uint64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ic",
		Short:         "run and inspect call-by-need evaluation programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file overriding the GC threshold and atom table")
	root.PersistentFlags().Uint64Var(&gcThresh, "gc-threshold", 0, "GC byte-allocation threshold (0 = runtime default)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newGCStatsCmd())
	root.AddCommand(newReplCmd())
	return root
}

// fatal converts a RuntimeError (or any other library error) into the
// diagnostic-plus-exit-1 contract expected of the command: library
// code never calls os.Exit itself, only this top-level handler does.
func fatal(err error) {
	var rerr *runtime.RuntimeError
	if e, ok := err.(*runtime.RuntimeError); ok {
		rerr = e
	}
	if rerr != nil {
		log.Printf("fatal: %v (kind=%d)", rerr, rerr.Kind)
	} else {
		log.Printf("fatal: %v", err)
	}
	os.Exit(1)
}

// buildRuntime applies --config and --gc-threshold (the flag wins
// when both are set) and returns a ready-to-use runtime plus the atom
// table to render values with.
func buildRuntime() (*runtime.Runtime, []string, error) {
	threshold := gcThresh
	var atomNames []string

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		if threshold == 0 {
			threshold = cfg.GCThreshold
		}
		if cfg.AtomTable != "" {
			names, err := config.LoadAtomNames(cfg.AtomTable)
			if err != nil {
				return nil, nil, err
			}
			atomNames = names
		}
	}

	return runtime.New(threshold), atomNames, nil
}

func printGCStats(rt *runtime.Runtime) {
	fmt.Printf("live records:   %d\n", rt.LiveCount())
	fmt.Printf("bytes allocated: %d\n", rt.AllocSize())
	fmt.Printf("gc time:        %.6fs\n", rt.GCTime())
}
