package signsim

import "context"

// CycleLength returns the number of steps after which bodies started at
// rest at initial first return to exactly that state. The rule is
// reversible, so the first repeated state is always the starting one.
// A limit above zero caps the search and yields ErrNoCycle when reached.
func (s *Simulator) CycleLength(ctx context.Context, initial []int, limit int) (int, error) {
	if err := validate(initial, 0); err != nil {
		return 0, err
	}
	if limit < 0 {
		return 0, stepCountError("limit must be non-negative, got %d", limit)
	}

	start := Rest(initial)
	cur := Rest(initial)
	next := Rest(initial)

	for steps := 1; limit == 0 || steps <= limit; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, &StepError{Step: steps, Err: err}
			}
		}

		s.stepInto(&next, cur)
		cur, next = next, cur

		if cur.Equal(start) {
			return steps, nil
		}
	}

	return 0, ErrNoCycle
}

// CycleLength is the serial form of [Simulator.CycleLength].
func CycleLength(ctx context.Context, initial []int, limit int) (int, error) {
	return New().CycleLength(ctx, initial, limit)
}
