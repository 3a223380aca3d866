package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/signsim/internal/signsim"
)

// MaxCandidates bounds the number of configurations a search will visit.
const MaxCandidates = 1_000_000

var ErrNoCandidate = errors.New("optim: no configuration could be evaluated")

// Objective scores an initial configuration. Lower is better.
type Objective func(ctx context.Context, initial []int) (float64, error)

// GridSearch visits every configuration of a fixed number of bodies whose
// positions each lie in [lo, hi].
type GridSearch struct {
	bodies int
	size   int
	values []int
}

func NewGridSearch(bodies, lo, hi int) (*GridSearch, error) {
	if bodies < 1 {
		return nil, fmt.Errorf("optim: need at least one body, got %d", bodies)
	}
	if hi < lo {
		return nil, fmt.Errorf("optim: empty range [%d, %d]", lo, hi)
	}

	// hi-lo+1 overflows int for wide ranges; the uint64 difference does not.
	span := uint64(hi) - uint64(lo)
	if span >= MaxCandidates {
		return nil, fmt.Errorf("optim: range [%d, %d] exceeds %d candidates", lo, hi, MaxCandidates)
	}
	count := int(span) + 1

	size := 1
	for i := 0; i < bodies && count > 1; i++ {
		size *= count
		if size > MaxCandidates {
			return nil, fmt.Errorf("optim: %d^%d configurations exceeds %d", count, bodies, MaxCandidates)
		}
	}

	g := &GridSearch{bodies: bodies, size: size, values: make([]int, count)}
	for i := range g.values {
		g.values[i] = lo + i
	}
	return g, nil
}

// Size is the number of configurations in the grid.
func (g *GridSearch) Size() int { return g.size }

// Search returns the configuration with the lowest objective. The first
// one found wins ties. Configurations the objective rejects are skipped,
// but cancellation reported by the objective aborts the search.
func (g *GridSearch) Search(ctx context.Context, objective Objective) ([]int, float64, error) {
	best := math.Inf(1)
	var bestInitial []int

	current := make([]int, g.bodies)
	if err := g.searchRecursive(ctx, 0, current, objective, &best, &bestInitial); err != nil {
		return nil, 0, err
	}
	if bestInitial == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestInitial, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current []int,
	objective Objective,
	best *float64,
	bestInitial *[]int,
) error {
	if depth == g.bodies {
		if err := ctx.Err(); err != nil {
			return err
		}

		val, err := objective(ctx, current)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestInitial = append([]int(nil), current...)
		}
		return nil
	}

	for _, v := range g.values {
		current[depth] = v
		if err := g.searchRecursive(ctx, depth+1, current, objective, best, bestInitial); err != nil {
			return err
		}
	}
	return nil
}

// LongestCycle scores a configuration by its negated cycle length, so a
// search finds the longest cycle. Configurations without a cycle within
// limit are rejected.
func LongestCycle(limit int) Objective {
	return func(ctx context.Context, initial []int) (float64, error) {
		n, err := signsim.CycleLength(ctx, initial, limit)
		if err != nil {
			return 0, err
		}
		return -float64(n), nil
	}
}

// PeakMetric scores a configuration by the negated final value of m after
// steps steps, so a search finds the configuration that maximizes it.
func PeakMetric(steps int, newMetric func() signsim.Metric) Objective {
	return func(ctx context.Context, initial []int) (float64, error) {
		m := newMetric()
		sim := signsim.New()
		sim.AddMetric(m)
		if _, err := sim.Run(ctx, initial, steps); err != nil {
			return 0, err
		}
		return -m.Value(), nil
	}
}
