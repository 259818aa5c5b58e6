package runtime

// Kind discriminates the three Value variants.
type Kind uint8

const (
	KindInteger Kind = iota
	KindAtom
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindAtom:
		return "atom"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Atom indices reserved by convention; atom 0 is conventionally nil
// but that is a program convention the runtime does not enforce.
const (
	AtomTrue  = 1
	AtomFalse = 2
)

// Value is the tagged union every compiled expression reduces to:
// an Integer, an Atom (an index into a program-supplied name table),
// or a Pair referencing an activation record of arity 2.
type Value struct {
	kind    Kind
	integer int64
	atom    uint64
	pair    *AR
}

// Integer constructs an Integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Atom constructs an Atom value from a table index.
func Atom(index uint64) Value { return Value{kind: KindAtom, atom: index} }

func pairValue(ar *AR) Value { return Value{kind: KindPair, pair: ar} }

// Bool returns the conventional true/false atom for b.
func Bool(b bool) Value {
	if b {
		return Atom(AtomTrue)
	}
	return Atom(AtomFalse)
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// KindName is Kind().String(), for error messages.
func (v Value) KindName() string { return v.kind.String() }

// AsInteger returns v's integer payload; ok is false if v is not an Integer.
func (v Value) AsInteger() (n int64, ok bool) {
	return v.integer, v.kind == KindInteger
}

// AsAtom returns v's atom index; ok is false if v is not an Atom.
func (v Value) AsAtom() (index uint64, ok bool) {
	return v.atom, v.kind == KindAtom
}

// AsPair returns the AR backing v; ok is false if v is not a Pair.
func (v Value) AsPair() (ar *AR, ok bool) {
	return v.pair, v.kind == KindPair
}

// IsPair reports whether v is a Pair, as the atom true/false.
func IsPair(v Value) Value { return Bool(v.kind == KindPair) }

func bothIntegers(op string, a, b Value) (int64, int64, error) {
	if a.kind != KindInteger || b.kind != KindInteger {
		return 0, 0, typeMismatchError(op, a, b)
	}
	return a.integer, b.integer, nil
}

// Add requires both operands to be Integer.
func Add(a, b Value) (Value, error) {
	x, y, err := bothIntegers("add", a, b)
	if err != nil {
		return Value{}, err
	}
	return Integer(x + y), nil
}

// Sub requires both operands to be Integer.
func Sub(a, b Value) (Value, error) {
	x, y, err := bothIntegers("sub", a, b)
	if err != nil {
		return Value{}, err
	}
	return Integer(x - y), nil
}

// Mul requires both operands to be Integer.
func Mul(a, b Value) (Value, error) {
	x, y, err := bothIntegers("mul", a, b)
	if err != nil {
		return Value{}, err
	}
	return Integer(x * y), nil
}

// Eq is fatal on pair operands and returns Atom(false) on a kind
// mismatch between integers and atoms, per the core's specified
// policy (see the "eq on mismatched types" decision in SPEC_FULL.md).
func Eq(a, b Value) (Value, error) {
	if a.kind == KindPair || b.kind == KindPair {
		return Value{}, typeMismatchError("eq", a, b)
	}
	if a.kind != b.kind {
		return Bool(false), nil
	}
	switch a.kind {
	case KindInteger:
		return Bool(a.integer == b.integer), nil
	case KindAtom:
		return Bool(a.atom == b.atom), nil
	default:
		return Value{}, unreachableError("Eq")
	}
}

// Lt, Le, Gt, Ge are defined only on integer pairs.
func Lt(a, b Value) (Value, error) { return compareInts("lt", a, b, func(x, y int64) bool { return x < y }) }
func Le(a, b Value) (Value, error) { return compareInts("le", a, b, func(x, y int64) bool { return x <= y }) }
func Gt(a, b Value) (Value, error) { return compareInts("gt", a, b, func(x, y int64) bool { return x > y }) }
func Ge(a, b Value) (Value, error) { return compareInts("ge", a, b, func(x, y int64) bool { return x >= y }) }

func compareInts(op string, a, b Value, cmp func(int64, int64) bool) (Value, error) {
	x, y, err := bothIntegers(op, a, b)
	if err != nil {
		return Value{}, err
	}
	return Bool(cmp(x, y)), nil
}
