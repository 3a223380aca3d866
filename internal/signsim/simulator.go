package signsim

import (
	"context"
	"runtime"
)

// defaultMinChunk is the smallest number of bodies handed to one goroutine.
// Each body costs O(N) comparisons, so chunks can be small.
const defaultMinChunk = 64

// cancelCheckInterval bounds how many steps run between context checks in
// long searches.
const cancelCheckInterval = 1024

type Metric interface {
	Name() string
	Observe(x Snapshot, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x Snapshot, step int)
}

type Option func(*Simulator)

// WithWorkers sets how many goroutines share the per-body work of one step.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		s.workers = n
	}
}

// WithMinChunk sets the smallest body range worth a goroutine.
func WithMinChunk(n int) Option {
	return func(s *Simulator) { s.minChunk = n }
}

type Simulator struct {
	workers   int
	minChunk  int
	metrics   []Metric
	observers []Observer
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		workers:   1,
		minChunk:  defaultMinChunk,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Workers reports the configured per-step parallelism.
func (s *Simulator) Workers() int { return s.workers }

// Simulate runs a fresh serial simulator over the given initial positions.
func Simulate(initial []int, steps int) (*Trajectory, error) {
	return New().Run(context.Background(), initial, steps)
}

// Run simulates steps steps from initial positions at rest. The returned
// trajectory has steps+1 snapshots. Invalid input is rejected before any
// step runs; a canceled context aborts the run and returns no trajectory.
func (s *Simulator) Run(ctx context.Context, initial []int, steps int) (*Trajectory, error) {
	if err := validate(initial, steps); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	traj := newTrajectory(steps)
	x := Rest(initial)
	traj.append(x)
	s.notify(x, 0)

	for step := 1; step <= steps; step++ {
		select {
		case <-ctx.Done():
			return nil, &StepError{Step: step, Err: ctx.Err()}
		default:
		}

		x = s.Step(x)
		traj.append(x)
		s.notify(x, step)
	}

	for _, m := range s.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	return traj, nil
}

// Step advances x by one step and returns the new snapshot.
func (s *Simulator) Step(x Snapshot) Snapshot {
	next := Snapshot{pos: make([]int, len(x.pos)), vel: make([]int, len(x.vel))}
	s.stepInto(&next, x)
	return next
}

// stepInto writes the successor of x into dst, which must already hold
// slices of the right length and must not alias x.
func (s *Simulator) stepInto(dst *Snapshot, x Snapshot) {
	parallelFor(len(x.pos), s.workers, s.minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			v := x.vel[i] + pull(x.pos, i)
			dst.vel[i] = v
			dst.pos[i] = x.pos[i] + v
		}
	})
}

// pull is the velocity change of body i: one unit toward every other body.
// The j == i term is sign(0) and contributes nothing.
func pull(pos []int, i int) int {
	dv := 0
	p := pos[i]
	for _, q := range pos {
		dv += sign(q - p)
	}
	return dv
}

func (s *Simulator) notify(x Snapshot, step int) {
	for _, m := range s.metrics {
		m.Observe(x, step)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, step)
	}
}

func validate(initial []int, steps int) error {
	if len(initial) == 0 {
		return shapeError("no bodies")
	}
	if steps < 0 {
		return stepCountError("must be non-negative, got %d", steps)
	}
	return nil
}
