package signsim

import (
	"fmt"
	"slices"
)

// Snapshot holds the positions and velocities of all bodies at one step.
// It is never modified after construction; accessors return copies.
type Snapshot struct {
	pos []int
	vel []int
}

// NewSnapshot copies positions and velocities into a new snapshot.
func NewSnapshot(positions, velocities []int) (Snapshot, error) {
	if len(positions) != len(velocities) {
		return Snapshot{}, fmt.Errorf("signsim: %d positions but %d velocities", len(positions), len(velocities))
	}
	return Snapshot{pos: slices.Clone(positions), vel: slices.Clone(velocities)}, nil
}

// Rest returns bodies at the given positions with zero velocity.
func Rest(positions []int) Snapshot {
	return Snapshot{pos: slices.Clone(positions), vel: make([]int, len(positions))}
}

func (s Snapshot) Bodies() int { return len(s.pos) }

func (s Snapshot) Position(i int) int { return s.pos[i] }
func (s Snapshot) Velocity(i int) int { return s.vel[i] }

func (s Snapshot) Positions() []int  { return slices.Clone(s.pos) }
func (s Snapshot) Velocities() []int { return slices.Clone(s.vel) }

// PotentialEnergy is the sum of absolute positions.
func (s Snapshot) PotentialEnergy() int { return absSum(s.pos) }

// KineticEnergy is the sum of absolute velocities.
func (s Snapshot) KineticEnergy() int { return absSum(s.vel) }

// TotalEnergy sums |p|*|v| per body.
func (s Snapshot) TotalEnergy() int {
	total := 0
	for i := range s.pos {
		total += abs(s.pos[i]) * abs(s.vel[i])
	}
	return total
}

// Momentum is the sum of velocities. Pairwise pulls cancel, so it stays at
// zero for any trajectory started at rest.
func (s Snapshot) Momentum() int {
	sum := 0
	for _, v := range s.vel {
		sum += v
	}
	return sum
}

// Center is the mean position, truncated toward zero.
func (s Snapshot) Center() int {
	if len(s.pos) == 0 {
		return 0
	}
	sum := 0
	for _, p := range s.pos {
		sum += p
	}
	return sum / len(s.pos)
}

func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s.pos, other.pos) && slices.Equal(s.vel, other.vel)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("pos=%v vel=%v", s.pos, s.vel)
}

// Trajectory is the full history of a run: one snapshot per step from 0
// through the requested step count, plus the energy series.
type Trajectory struct {
	snapshots []Snapshot
	potential []int
	kinetic   []int

	// Metrics holds the final values of any metrics attached to the run.
	Metrics map[string]float64
}

// NewTrajectory rebuilds a trajectory from stored snapshots. Energies are
// recomputed rather than trusted.
func NewTrajectory(snapshots []Snapshot) (*Trajectory, error) {
	if len(snapshots) == 0 {
		return nil, shapeError("trajectory has no snapshots")
	}
	n := snapshots[0].Bodies()
	t := newTrajectory(len(snapshots) - 1)
	for i, s := range snapshots {
		if s.Bodies() != n {
			return nil, fmt.Errorf("signsim: snapshot %d has %d bodies, want %d", i, s.Bodies(), n)
		}
		t.append(s)
	}
	return t, nil
}

func newTrajectory(steps int) *Trajectory {
	return &Trajectory{
		snapshots: make([]Snapshot, 0, steps+1),
		potential: make([]int, 0, steps+1),
		kinetic:   make([]int, 0, steps+1),
		Metrics:   make(map[string]float64),
	}
}

func (t *Trajectory) append(s Snapshot) {
	t.snapshots = append(t.snapshots, s)
	t.potential = append(t.potential, s.PotentialEnergy())
	t.kinetic = append(t.kinetic, s.KineticEnergy())
}

// Len is the number of snapshots, steps+1.
func (t *Trajectory) Len() int { return len(t.snapshots) }

func (t *Trajectory) Steps() int { return len(t.snapshots) - 1 }

func (t *Trajectory) Bodies() int { return t.snapshots[0].Bodies() }

func (t *Trajectory) At(step int) Snapshot { return t.snapshots[step] }

func (t *Trajectory) Initial() Snapshot { return t.snapshots[0] }

func (t *Trajectory) Final() Snapshot { return t.snapshots[len(t.snapshots)-1] }

// Positions returns positions[t][i] for every step t and body i.
func (t *Trajectory) Positions() [][]int {
	out := make([][]int, len(t.snapshots))
	for i, s := range t.snapshots {
		out[i] = s.Positions()
	}
	return out
}

// Velocities returns velocities[t][i] for every step t and body i.
func (t *Trajectory) Velocities() [][]int {
	out := make([][]int, len(t.snapshots))
	for i, s := range t.snapshots {
		out[i] = s.Velocities()
	}
	return out
}

func (t *Trajectory) PotentialEnergies() []int { return slices.Clone(t.potential) }
func (t *Trajectory) KineticEnergies() []int   { return slices.Clone(t.kinetic) }

// Body returns the position and velocity series of a single body.
func (t *Trajectory) Body(i int) (positions, velocities []int) {
	positions = make([]int, len(t.snapshots))
	velocities = make([]int, len(t.snapshots))
	for step, s := range t.snapshots {
		positions[step] = s.pos[i]
		velocities[step] = s.vel[i]
	}
	return positions, velocities
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absSum(xs []int) int {
	sum := 0
	for _, x := range xs {
		sum += abs(x)
	}
	return sum
}
