package signsim

import (
	"errors"
	"fmt"
)

// Usage errors. All of them are detected before the first step runs.
var (
	// ErrInvalidShape indicates initial positions that are not a flat,
	// non-empty sequence of integers.
	ErrInvalidShape = errors.New("signsim: invalid input shape")

	// ErrInvalidStepCount indicates a step count that is not a
	// non-negative integer scalar.
	ErrInvalidStepCount = errors.New("signsim: invalid step count")

	// ErrArity indicates a call with the wrong number of arguments.
	ErrArity = errors.New("signsim: wrong number of arguments")

	// ErrNoCycle indicates the state did not repeat within the step limit.
	ErrNoCycle = errors.New("signsim: no cycle within step limit")

	// ErrCycleOverflow indicates a combined cycle length too large for int.
	ErrCycleOverflow = errors.New("signsim: combined cycle length overflows int")
)

// UsageError wraps one of the usage sentinels with the offending argument.
type UsageError struct {
	Arg    string
	Detail string
	Err    error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Arg, e.Detail)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// StepError reports a run that stopped before completing, e.g. because its
// context was canceled.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func shapeError(format string, a ...any) error {
	return &UsageError{Arg: "initial_positions", Detail: fmt.Sprintf(format, a...), Err: ErrInvalidShape}
}

func stepCountError(format string, a ...any) error {
	return &UsageError{Arg: "steps", Detail: fmt.Sprintf(format, a...), Err: ErrInvalidStepCount}
}
