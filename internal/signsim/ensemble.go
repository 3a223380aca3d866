package signsim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent simulation in an ensemble.
type Job struct {
	Initial []int
	Steps   int
}

// Ensemble runs independent simulations concurrently. Each job gets its own
// Simulator from the factory so stateful metrics are never shared.
type Ensemble struct {
	newSim func() *Simulator
	limit  int
}

// NewEnsemble builds an ensemble running at most limit jobs at once; a limit
// below 1 means no cap. A nil factory uses New().
func NewEnsemble(newSim func() *Simulator, limit int) *Ensemble {
	if newSim == nil {
		newSim = func() *Simulator { return New() }
	}
	return &Ensemble{newSim: newSim, limit: limit}
}

// Run validates every job before starting any of them, then runs them all.
// Trajectories are returned in job order. The first failure cancels the rest.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Trajectory, error) {
	for _, job := range jobs {
		if err := validate(job.Initial, job.Steps); err != nil {
			return nil, err
		}
	}

	results := make([]*Trajectory, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			traj, err := e.newSim().Run(ctx, job.Initial, job.Steps)
			if err != nil {
				return err
			}
			results[i] = traj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
