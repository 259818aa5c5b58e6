// Package runtime implements the call-by-need evaluation machinery a
// compiled program is built on: the Value tagged union, activation
// records with their lazy-argument thunk protocol, and the
// mark-and-sweep collector that reclaims unreachable records.
package runtime

import (
	"time"
	"unsafe"
)

// DefaultGCThreshold is the reference byte-allocation threshold (4 MiB)
// at which AR allocation triggers a collection.
const DefaultGCThreshold = 4 * 1024 * 1024

// MaxArity is the largest arity an AR can be constructed with.
const MaxArity = 255

// Runtime is the single handle a compiled program threads through
// every allocation and force: it owns the global gc-list, the
// byte-allocation accumulator and threshold, and the cumulative GC
// timing/byte counters. There is exactly one per running program;
// nothing here is safe for concurrent use, matching the single-
// threaded, synchronous contract the runtime is specified under.
type Runtime struct {
	gcFirst *AR

	currAlloc uint64
	threshold uint64

	allocSize uint64
	gcTime    time.Duration
}

// New returns a Runtime with the given GC threshold in bytes. A
// threshold of 0 uses DefaultGCThreshold.
func New(threshold uint64) *Runtime {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}
	return &Runtime{threshold: threshold}
}

var arHeaderSize = uint64(unsafe.Sizeof(AR{}))
var thunkSize = uint64(unsafe.Sizeof(Thunk(nil)))
var valueSize = uint64(unsafe.Sizeof(Value{}))

func blockSize(arity int) uint64 {
	return arHeaderSize + uint64(arity)*(thunkSize+valueSize)
}

// NewAR allocates a new activation record with the given parent and
// one thunk per argument slot, links it onto the global gc-list, and
// returns it. If the allocation pushes the running byte counter past
// the runtime's GC threshold, a collection runs before NewAR returns
// and the counter resets to zero.
func (rt *Runtime) NewAR(parent *AR, thunks ...Thunk) (*AR, error) {
	if len(thunks) > MaxArity {
		return nil, &RuntimeError{Kind: ErrKindIndexRange, msg: "ar_new: arity exceeds 255"}
	}

	ar := &AR{
		parent: parent,
		arity:  uint8(len(thunks)),
		thunks: append([]Thunk(nil), thunks...),
		values: make([]Value, len(thunks)),
	}

	size := blockSize(len(thunks))
	rt.allocSize += size
	rt.currAlloc += size

	ar.gcNext = rt.gcFirst
	rt.gcFirst = ar

	if rt.currAlloc > rt.threshold {
		rt.gc()
		rt.currAlloc = 0
	}

	return ar, nil
}

// Cons allocates a Pair value backed by a fresh arity-2 AR whose slot
// 0 computes the head and slot 1 the tail.
func (rt *Runtime) Cons(parent *AR, head, tail Thunk) (Value, error) {
	ar, err := rt.NewAR(parent, head, tail)
	if err != nil {
		return Value{}, err
	}
	return pairValue(ar), nil
}

// GetArg implements call-by-need forcing with memoization: the first
// call to GetArg for a given slot invokes its thunk against the AR's
// parent and caches the result; every subsequent call returns the
// cached value without invoking the thunk again.
//
// The thunk pointer is cleared before, not after, the thunk runs: a
// re-entrant GetArg on the same slot (which well-formed compiled
// programs never perform) observes a cleared slot and the zero Value
// rather than re-invoking the thunk. This is documented undefined
// behavior, not a guarantee of correct results — see the "re-entry
// into get_arg" decision in SPEC_FULL.md.
func (rt *Runtime) GetArg(ar *AR, i int) (Value, error) {
	if i < 0 || i >= int(ar.arity) {
		return Value{}, indexRangeError(i, ar.arity)
	}
	thunk := ar.thunks[i]
	if thunk == nil {
		return ar.values[i], nil
	}
	ar.thunks[i] = nil
	v, err := thunk(ar.parent)
	if err != nil {
		return Value{}, err
	}
	ar.values[i] = v
	return v, nil
}

// Car requires v to be a Pair and forces its head slot.
func (rt *Runtime) Car(v Value) (Value, error) {
	ar, ok := v.AsPair()
	if !ok {
		return Value{}, nonPairError("car", v)
	}
	return rt.GetArg(ar, 0)
}

// Cdr requires v to be a Pair and forces its tail slot.
func (rt *Runtime) Cdr(v Value) (Value, error) {
	ar, ok := v.AsPair()
	if !ok {
		return Value{}, nonPairError("cdr", v)
	}
	return rt.GetArg(ar, 1)
}

// ForceGC runs a collection immediately, regardless of the byte
// threshold, and resets the allocation counter. Intended for tests and
// for cmd/ic's gc-stats command.
func (rt *Runtime) ForceGC() {
	rt.gc()
	rt.currAlloc = 0
}

// Close drops the runtime's reference to the gc-list. Once the caller
// also drops its own AR references, everything becomes collectible by
// the host garbage collector.
func (rt *Runtime) Close() {
	rt.gcFirst = nil
}

// GCTime returns the cumulative wall-clock time spent inside the
// collector, in seconds.
func (rt *Runtime) GCTime() float64 { return rt.gcTime.Seconds() }

// AllocSize returns the cumulative number of bytes ever allocated via
// NewAR, independent of how many have since been collected.
func (rt *Runtime) AllocSize() uint64 { return rt.allocSize }

// LiveCount walks the gc-list and returns the number of live
// activation records. It is O(n) and intended for tests and
// diagnostics, not hot paths.
func (rt *Runtime) LiveCount() int {
	n := 0
	for cur := rt.gcFirst; cur != nil; cur = cur.gcNext {
		n++
	}
	return n
}
