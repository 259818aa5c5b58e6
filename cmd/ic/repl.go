package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/icrt/ic/internal/runtime"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactively build and inspect values against a live runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, atomNames, err := buildRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()
			return runRepl(rt, atomNames)
		},
	}
}

// shell holds the interpreter state for one REPL session: a stack of
// values that each command pops its operands from and pushes its
// result onto.
type shell struct {
	rt        *runtime.Runtime
	atomNames []string
	stack     []runtime.Value
}

// push records v on the session's value stack. A session's stack is
// its single root activation record's worth of live values: per
// spec.md §5, any pair the user builds stays flagged on_stack for the
// rest of the session, so a later "gc" or "stats" command can't sweep
// a record the user is still holding just because it's only reachable
// through this shell's own bookkeeping and not through rt itself.
func (s *shell) push(v runtime.Value) {
	if ar, ok := v.AsPair(); ok {
		ar.Push()
	}
	s.stack = append(s.stack, v)
}

func (s *shell) pop() (runtime.Value, error) {
	if len(s.stack) == 0 {
		return runtime.Value{}, fmt.Errorf("stack is empty")
	}
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v, nil
}

func runRepl(rt *runtime.Runtime, atomNames []string) error {
	rl, err := readline.New("ic> ")
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	s := &shell{rt: rt, atomNames: atomNames}
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return fmt.Errorf("repl: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := s.eval(rl.Stdout(), line); err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}

// eval runs one REPL command: a leading word naming the operation,
// the rest of the line its arguments if any. Commands that produce a
// value push it; commands that consume values pop them.
func (s *shell) eval(w io.Writer, line string) error {
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "int":
		if len(rest) != 1 {
			return fmt.Errorf("usage: int <n>")
		}
		n, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("int: %w", err)
		}
		s.push(runtime.Integer(n))

	case "atom":
		if len(rest) != 1 {
			return fmt.Errorf("usage: atom <index>")
		}
		n, err := strconv.ParseUint(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("atom: %w", err)
		}
		s.push(runtime.Atom(n))

	case "cons":
		tail, err := s.pop()
		if err != nil {
			return err
		}
		head, err := s.pop()
		if err != nil {
			return err
		}
		v, err := s.rt.Cons(nil,
			func(parent *runtime.AR) (runtime.Value, error) { return head, nil },
			func(parent *runtime.AR) (runtime.Value, error) { return tail, nil },
		)
		if err != nil {
			return err
		}
		s.push(v)

	case "car":
		v, err := s.pop()
		if err != nil {
			return err
		}
		car, err := s.rt.Car(v)
		if err != nil {
			return err
		}
		s.push(car)

	case "cdr":
		v, err := s.pop()
		if err != nil {
			return err
		}
		cdr, err := s.rt.Cdr(v)
		if err != nil {
			return err
		}
		s.push(cdr)

	case "dup":
		v, err := s.pop()
		if err != nil {
			return err
		}
		s.push(v)
		s.push(v)

	case "drop":
		if _, err := s.pop(); err != nil {
			return err
		}

	case "show":
		if len(s.stack) == 0 {
			return fmt.Errorf("stack is empty")
		}
		return runtime.Show(w, s.rt, s.atomNames, s.stack[len(s.stack)-1], true)

	case "gc":
		s.rt.ForceGC()
		fmt.Fprintln(w, "ok")

	case "stats":
		fmt.Fprintf(w, "live records:    %d\n", s.rt.LiveCount())
		fmt.Fprintf(w, "bytes allocated: %d\n", s.rt.AllocSize())
		fmt.Fprintf(w, "gc time:         %.6fs\n", s.rt.GCTime())

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
