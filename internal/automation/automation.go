package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/signsim/internal/config"
	"github.com/san-kum/signsim/internal/signsim"
)

// Scenario is a scripted batch of independent runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario. Positions and Steps are kept as
// decoded YAML values so malformed input is reported by the simulator's
// own argument checks. A preset fills whichever of them is missing.
type ScenarioRun struct {
	Name      string `yaml:"name"`
	Preset    string `yaml:"preset"`
	Positions any    `yaml:"positions"`
	Steps     any    `yaml:"steps"`
}

// RunResult pairs a scenario run with its trajectory.
type RunResult struct {
	Name       string
	Trajectory *signsim.Trajectory
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// Jobs validates every run and converts it to an ensemble job.
func (s *Scenario) Jobs() ([]signsim.Job, error) {
	jobs := make([]signsim.Job, 0, len(s.Runs))

	for i, run := range s.Runs {
		positions, steps := run.Positions, run.Steps
		if run.Preset != "" {
			p := config.GetPreset(run.Preset)
			if p == nil {
				return nil, fmt.Errorf("run %d: unknown preset %q", i+1, run.Preset)
			}
			if positions == nil {
				positions = p.Positions
			}
			if steps == nil {
				steps = p.Steps
			}
		}

		initial, n, err := signsim.ParseArgs(positions, steps)
		if err != nil {
			return nil, fmt.Errorf("run %d (%s): %w", i+1, run.label(i), err)
		}
		jobs = append(jobs, signsim.Job{Initial: initial, Steps: n})
	}

	return jobs, nil
}

func (r ScenarioRun) label(i int) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Preset != "":
		return r.Preset
	}
	return fmt.Sprintf("run%d", i+1)
}

// RunScenario executes all runs of a scenario concurrently, at most workers
// at a time. Results keep the order of the scenario file.
func RunScenario(ctx context.Context, scenario *Scenario, workers int, newSim func() *signsim.Simulator) ([]RunResult, error) {
	jobs, err := scenario.Jobs()
	if err != nil {
		return nil, err
	}

	trajs, err := signsim.NewEnsemble(newSim, workers).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	results := make([]RunResult, len(trajs))
	for i, traj := range trajs {
		results[i] = RunResult{Name: scenario.Runs[i].label(i), Trajectory: traj}
	}
	return results, nil
}

// PerturbationConfig defines randomized runs around a base configuration.
// The same Seed, zero included, always yields the same trials.
type PerturbationConfig struct {
	Base       []int
	Spread     int
	NumTrials  int
	CycleLimit int
	Seed       int64
}

// PerturbationResult is one trial of a perturbation study.
type PerturbationResult struct {
	TrialID     int
	Initial     []int
	CycleLength int
	Periodic    bool // false when no cycle was found within the limit
}

// RunPerturbations shifts every base position by a random amount in
// [-Spread, Spread] and measures the cycle length of each trial.
func RunPerturbations(ctx context.Context, cfg *PerturbationConfig) ([]PerturbationResult, error) {
	if len(cfg.Base) == 0 {
		return nil, signsim.ErrInvalidShape
	}
	if cfg.Spread < 0 {
		return nil, fmt.Errorf("spread must be non-negative, got %d", cfg.Spread)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	sim := signsim.New()
	results := make([]PerturbationResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		initial := make([]int, len(cfg.Base))
		for i, p := range cfg.Base {
			initial[i] = p + rng.Intn(2*cfg.Spread+1) - cfg.Spread
		}

		period, err := sim.CycleLength(ctx, initial, cfg.CycleLimit)
		periodic := true
		if errors.Is(err, signsim.ErrNoCycle) {
			periodic = false
		} else if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, PerturbationResult{
			TrialID:     trial,
			Initial:     initial,
			CycleLength: period,
			Periodic:    periodic,
		})
	}

	return results, nil
}

// PerturbationStats summarizes how many trials closed a cycle and the
// longest cycle found.
func PerturbationStats(results []PerturbationResult) (periodic, open, longest int) {
	for _, r := range results {
		if r.Periodic {
			periodic++
			longest = max(longest, r.CycleLength)
		} else {
			open++
		}
	}
	return
}
