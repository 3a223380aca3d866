package signsim

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// AxisCycles measures the cycle length of every axis concurrently. Each
// axis holds the same bodies' coordinates along one dimension, and axes
// evolve independently under the rule.
func (s *Simulator) AxisCycles(ctx context.Context, axes [][]int, limit int) ([]int, error) {
	if len(axes) == 0 {
		return nil, shapeError("no axes")
	}
	for i, axis := range axes {
		if err := validate(axis, 0); err != nil {
			return nil, fmt.Errorf("axis %d: %w", i, err)
		}
		if len(axis) != len(axes[0]) {
			return nil, shapeError("axis %d has %d bodies, want %d", i, len(axis), len(axes[0]))
		}
	}

	lengths := make([]int, len(axes))
	g, ctx := errgroup.WithContext(ctx)
	for i, axis := range axes {
		i, axis := i, axis
		g.Go(func() error {
			n, err := s.CycleLength(ctx, axis, limit)
			if err != nil {
				return fmt.Errorf("axis %d: %w", i, err)
			}
			lengths[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lengths, nil
}

// CombinedCycle returns the number of steps until every axis is back at
// its start at the same time: the least common multiple of the axis
// cycles. The limit applies to each axis, not to the combined length.
func (s *Simulator) CombinedCycle(ctx context.Context, axes [][]int, limit int) (int, error) {
	lengths, err := s.AxisCycles(ctx, axes, limit)
	if err != nil {
		return 0, err
	}
	return LCM(lengths...)
}

// CombinedCycle is the serial form of [Simulator.CombinedCycle].
func CombinedCycle(ctx context.Context, axes [][]int, limit int) (int, error) {
	return New().CombinedCycle(ctx, axes, limit)
}

// LCM is the least common multiple of positive ns, 1 for none.
func LCM(ns ...int) (int, error) {
	l := 1
	for _, n := range ns {
		if n < 1 {
			return 0, fmt.Errorf("signsim: lcm of non-positive %d", n)
		}
		step := n / gcd(l, n)
		if l > math.MaxInt/step {
			return 0, ErrCycleOverflow
		}
		l *= step
	}
	return l, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
