package runtime

import (
	"fmt"
	"io"
)

// Show prints v to w: an Integer in decimal, an Atom as a leading
// quote followed by its name looked up in atomNames, a Pair as
// "(head . tail)" with both components forced recursively (always
// with newline=false for the nested prints). When newline is true a
// trailing newline follows the value.
func Show(w io.Writer, rt *Runtime, atomNames []string, v Value, newline bool) error {
	if err := show(w, rt, atomNames, v); err != nil {
		return err
	}
	if newline {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func show(w io.Writer, rt *Runtime, atomNames []string, v Value) error {
	switch v.Kind() {
	case KindInteger:
		n, _ := v.AsInteger()
		_, err := fmt.Fprintf(w, "%d", n)
		return err
	case KindAtom:
		idx, _ := v.AsAtom()
		name, err := atomName(atomNames, idx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "'%s", name)
		return err
	case KindPair:
		ar, _ := v.AsPair()
		head, err := rt.GetArg(ar, 0)
		if err != nil {
			return err
		}
		tail, err := rt.GetArg(ar, 1)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "("); err != nil {
			return err
		}
		if err := show(w, rt, atomNames, head); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, " . "); err != nil {
			return err
		}
		if err := show(w, rt, atomNames, tail); err != nil {
			return err
		}
		_, err = fmt.Fprint(w, ")")
		return err
	default:
		return unreachableError("Show")
	}
}

func atomName(atomNames []string, index uint64) (string, error) {
	if index >= uint64(len(atomNames)) {
		return "", &RuntimeError{Kind: ErrKindIndexRange, msg: fmt.Sprintf("show: atom index %d out of range [0,%d)", index, len(atomNames))}
	}
	return atomNames[index], nil
}
