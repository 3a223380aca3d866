package signsim

import (
	"fmt"
	"math"
	"reflect"
)

// SimulateArgs is the untyped entry point for values decoded from YAML,
// JSON or the command line. It expects exactly two arguments, the initial
// positions and the step count, and reports ErrArity, ErrInvalidShape or
// ErrInvalidStepCount before any step runs.
func SimulateArgs(args ...any) (*Trajectory, error) {
	initial, steps, err := ParseArgs(args...)
	if err != nil {
		return nil, err
	}
	return Simulate(initial, steps)
}

// ParseArgs validates and converts the two arguments of SimulateArgs.
func ParseArgs(args ...any) ([]int, int, error) {
	if len(args) != 2 {
		return nil, 0, &UsageError{
			Arg:    "args",
			Detail: fmt.Sprintf("got %d, want initial positions and step count", len(args)),
			Err:    ErrArity,
		}
	}

	initial, err := PositionsOf(args[0])
	if err != nil {
		return nil, 0, err
	}
	steps, err := StepsOf(args[1])
	if err != nil {
		return nil, 0, err
	}
	return initial, steps, nil
}

// PositionsOf converts a one-dimensional sequence of integer-valued numbers
// into positions. Scalars, nested sequences, empty sequences and
// non-integral values are shape errors.
func PositionsOf(v any) ([]int, error) {
	if ints, ok := v.([]int); ok {
		if len(ints) == 0 {
			return nil, shapeError("no bodies")
		}
		out := make([]int, len(ints))
		copy(out, ints)
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if !isSequence(rv) {
		return nil, shapeError("want a sequence, got %T", v)
	}
	if rv.Len() == 0 {
		return nil, shapeError("no bodies")
	}

	out := make([]int, rv.Len())
	for i := range out {
		elem := indirect(rv.Index(i))
		if isSequence(elem) {
			return nil, shapeError("element %d is a nested sequence", i)
		}
		n, ok := integerValue(elem)
		if !ok {
			return nil, shapeError("element %d is not an integer: %v", i, describe(elem))
		}
		out[i] = n
	}
	return out, nil
}

// StepsOf converts a non-negative integer scalar into a step count.
func StepsOf(v any) (int, error) {
	rv := indirect(reflect.ValueOf(v))
	if isSequence(rv) {
		return 0, stepCountError("want a scalar, got %T", v)
	}
	n, ok := integerValue(rv)
	if !ok {
		return 0, stepCountError("not an integer: %v", describe(rv))
	}
	if n < 0 {
		return 0, stepCountError("must be non-negative, got %d", n)
	}
	return n, nil
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isSequence(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func integerValue(rv reflect.Value) (int, bool) {
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

func describe(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	return fmt.Sprintf("%v (%s)", rv.Interface(), rv.Type())
}
