package signsim

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestSimulateGolden(t *testing.T) {
	traj, err := Simulate([]int{-1, 1}, 3)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	wantPos := [][]int{{-1, 1}, {0, 0}, {1, -1}, {1, -1}}
	wantVel := [][]int{{0, 0}, {1, -1}, {1, -1}, {0, 0}}

	pos := traj.Positions()
	vel := traj.Velocities()
	for step := range wantPos {
		if !slices.Equal(pos[step], wantPos[step]) {
			t.Errorf("positions[%d] = %v, want %v", step, pos[step], wantPos[step])
		}
		if !slices.Equal(vel[step], wantVel[step]) {
			t.Errorf("velocities[%d] = %v, want %v", step, vel[step], wantVel[step])
		}
	}

	if got := traj.PotentialEnergies(); !slices.Equal(got, []int{2, 0, 2, 2}) {
		t.Errorf("potential energies = %v", got)
	}
	if got := traj.KineticEnergies(); !slices.Equal(got, []int{0, 2, 2, 0}) {
		t.Errorf("kinetic energies = %v", got)
	}
}

func TestSimulateFourBodies(t *testing.T) {
	traj, err := Simulate([]int{-1, 2, 4, 3}, 10)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	first := traj.At(1)
	if got := first.Positions(); !slices.Equal(got, []int{2, 3, 1, 2}) {
		t.Errorf("step 1 positions = %v", got)
	}
	if got := first.Velocities(); !slices.Equal(got, []int{3, 1, -3, -1}) {
		t.Errorf("step 1 velocities = %v", got)
	}

	final := traj.Final()
	if got := final.Positions(); !slices.Equal(got, []int{2, 1, 3, 2}) {
		t.Errorf("step 10 positions = %v", got)
	}
	if got := final.Velocities(); !slices.Equal(got, []int{-3, -1, 3, 1}) {
		t.Errorf("step 10 velocities = %v", got)
	}
}

func TestSimulateShape(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		steps   int
	}{
		{"single body", []int{7}, 5},
		{"zero steps", []int{1, 2, 3}, 0},
		{"coincident", []int{0, 0, 3}, 4},
		{"spread", []int{-8, -3, 0, 4, 9}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, err := Simulate(tt.initial, tt.steps)
			if err != nil {
				t.Fatalf("simulate failed: %v", err)
			}
			if traj.Len() != tt.steps+1 {
				t.Errorf("expected %d snapshots, got %d", tt.steps+1, traj.Len())
			}
			if traj.Steps() != tt.steps {
				t.Errorf("expected %d steps, got %d", tt.steps, traj.Steps())
			}
			for step, row := range traj.Positions() {
				if len(row) != len(tt.initial) {
					t.Errorf("positions[%d] has %d columns", step, len(row))
				}
			}
			for step, row := range traj.Velocities() {
				if len(row) != len(tt.initial) {
					t.Errorf("velocities[%d] has %d columns", step, len(row))
				}
			}
			if len(traj.PotentialEnergies()) != tt.steps+1 || len(traj.KineticEnergies()) != tt.steps+1 {
				t.Error("energy series length mismatch")
			}
		})
	}
}

func TestSimulateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		initial []int
		steps   int
		want    error
	}{
		{"nil positions", nil, 3, ErrInvalidShape},
		{"empty positions", []int{}, 3, ErrInvalidShape},
		{"negative steps", []int{1, 2}, -1, ErrInvalidStepCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, err := Simulate(tt.initial, tt.steps)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if traj != nil {
				t.Error("expected no trajectory on error")
			}
		})
	}
}

func TestSimulateDoesNotAliasInput(t *testing.T) {
	initial := []int{-1, 1}
	traj, err := Simulate(initial, 2)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	initial[0] = 100
	if traj.Initial().Position(0) != -1 {
		t.Error("trajectory shares memory with caller input")
	}

	pos := traj.Positions()
	pos[0][0] = 42
	if traj.Initial().Position(0) != -1 {
		t.Error("Positions() exposed internal storage")
	}
}

func TestWorkersMatchSerial(t *testing.T) {
	initial := make([]int, 200)
	for i := range initial {
		initial[i] = (i*37)%101 - 50
	}

	serial, err := New().Run(context.Background(), initial, 25)
	if err != nil {
		t.Fatalf("serial run failed: %v", err)
	}
	parallel, err := New(WithWorkers(4), WithMinChunk(8)).Run(context.Background(), initial, 25)
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}

	for step := 0; step < serial.Len(); step++ {
		if !serial.At(step).Equal(parallel.At(step)) {
			t.Fatalf("step %d differs: %v vs %v", step, serial.At(step), parallel.At(step))
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	traj, err := New().Run(ctx, []int{1, 2}, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != 1 {
		t.Errorf("expected StepError at step 1, got %v", err)
	}
	if traj != nil {
		t.Error("expected no trajectory on cancel")
	}
}

type countingMetric struct {
	steps []int
	reset int
}

func (c *countingMetric) Name() string                 { return "count" }
func (c *countingMetric) Observe(x Snapshot, step int) { c.steps = append(c.steps, step) }
func (c *countingMetric) Value() float64               { return float64(len(c.steps)) }
func (c *countingMetric) Reset() {
	c.steps = nil
	c.reset++
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New()
	metric := &countingMetric{}
	sim.AddMetric(metric)

	traj, err := sim.Run(context.Background(), []int{-1, 1}, 3)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if metric.reset != 1 {
		t.Errorf("expected 1 reset, got %d", metric.reset)
	}
	if !slices.Equal(metric.steps, []int{0, 1, 2, 3}) {
		t.Errorf("observed steps %v", metric.steps)
	}
	if traj.Metrics["count"] != 4 {
		t.Errorf("expected metric value 4, got %v", traj.Metrics["count"])
	}
}

func TestCycleLength(t *testing.T) {
	tests := []struct {
		initial []int
		want    int
	}{
		{[]int{5}, 1},
		{[]int{-1, 1}, 6},
		{[]int{-1, 2, 4, 3}, 18},
		{[]int{-8, -3, 0, 4, 9}, 8},
	}

	for _, tt := range tests {
		got, err := CycleLength(context.Background(), tt.initial, 0)
		if err != nil {
			t.Errorf("CycleLength(%v) failed: %v", tt.initial, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CycleLength(%v) = %d, want %d", tt.initial, got, tt.want)
		}
	}
}

func TestCycleLengthLimit(t *testing.T) {
	_, err := CycleLength(context.Background(), []int{-1, 2, 4, 3}, 10)
	if !errors.Is(err, ErrNoCycle) {
		t.Errorf("expected ErrNoCycle, got %v", err)
	}

	_, err = CycleLength(context.Background(), []int{}, 0)
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestEnsembleRun(t *testing.T) {
	jobs := []Job{
		{Initial: []int{-1, 1}, Steps: 3},
		{Initial: []int{5}, Steps: 2},
		{Initial: []int{-1, 2, 4, 3}, Steps: 10},
	}

	results, err := NewEnsemble(nil, 2).Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, job := range jobs {
		if results[i].Steps() != job.Steps {
			t.Errorf("job %d: expected %d steps, got %d", i, job.Steps, results[i].Steps())
		}
		if results[i].Bodies() != len(job.Initial) {
			t.Errorf("job %d: expected %d bodies, got %d", i, len(job.Initial), results[i].Bodies())
		}
	}
}

func TestEnsembleRejectsBeforeRunning(t *testing.T) {
	started := 0
	factory := func() *Simulator {
		started++
		return New()
	}

	jobs := []Job{
		{Initial: []int{1, 2}, Steps: 3},
		{Initial: []int{1}, Steps: -2},
	}

	_, err := NewEnsemble(factory, 1).Run(context.Background(), jobs)
	if !errors.Is(err, ErrInvalidStepCount) {
		t.Errorf("expected ErrInvalidStepCount, got %v", err)
	}
	if started != 0 {
		t.Errorf("expected no simulators started, got %d", started)
	}
}

func benchPositions(n int) []int {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = (i*7919)%(2*n) - n
	}
	return pos
}

func BenchmarkStep(b *testing.B) {
	for _, bodies := range []int{64, 1024, 8192} {
		for _, workers := range []int{1, 4, 0} {
			b.Run(fmt.Sprintf("bodies=%d/workers=%d", bodies, workers), func(b *testing.B) {
				sim := New(WithWorkers(workers))
				x := Rest(benchPositions(bodies))

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					x = sim.Step(x)
				}
			})
		}
	}
}

func BenchmarkCycleLength(b *testing.B) {
	ctx := context.Background()
	for _, initial := range [][]int{{-1, 2, 4, 3}, {-8, -3, 0, 4, 9}} {
		b.Run(fmt.Sprint(initial), func(b *testing.B) {
			sim := New()
			for i := 0; i < b.N; i++ {
				if _, err := sim.CycleLength(ctx, initial, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCombinedCycle(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		if _, err := CombinedCycle(ctx, exampleAxes, 0); err != nil {
			b.Fatal(err)
		}
	}
}
