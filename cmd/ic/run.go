package main

import (
	"fmt"
	"os"

	"github.com/icrt/ic/examples/listops"
	"github.com/icrt/ic/internal/runtime"
	"github.com/spf13/cobra"
)

// program is a registered example: a thunk over a fresh Runtime that
// returns the value to show, plus the atom table to render it with.
type program struct {
	name      string
	run       func(rt *runtime.Runtime) (runtime.Value, error)
	atomNames []string
}

var programs = []program{
	{
		name:      "listops",
		run:       listops.Result,
		atomNames: listops.AtomNames,
	},
	{
		name:      "listops-world",
		run:       listops.ResultViaWorld,
		atomNames: listops.AtomNames,
	},
}

func lookupProgram(name string) (program, bool) {
	for _, p := range programs {
		if p.name == name {
			return p, true
		}
	}
	return program{}, false
}

func newRunCmd() *cobra.Command {
	var showStats bool
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "run a registered example program and show its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := lookupProgram(args[0])
			if !ok {
				return fmt.Errorf("run: unknown program %q", args[0])
			}
			rt, atomNames, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()
			if atomNames == nil {
				atomNames = p.atomNames
			}

			v, err := p.run(rt)
			if err != nil {
				return err
			}
			if err := runtime.Show(os.Stdout, rt, atomNames, v, true); err != nil {
				return err
			}
			if showStats {
				printGCStats(rt)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showStats, "stats", false, "print GC statistics after running")
	return cmd
}
