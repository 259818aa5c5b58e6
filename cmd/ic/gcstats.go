package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGCStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc-stats <program>",
		Short: "run a registered example program and report collector statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := lookupProgram(args[0])
			if !ok {
				return fmt.Errorf("gc-stats: unknown program %q", args[0])
			}
			rt, _, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := p.run(rt); err != nil {
				return err
			}
			rt.ForceGC()
			printGCStats(rt)
			return nil
		},
	}
}
