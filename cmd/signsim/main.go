package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/signsim/internal/analysis"
	"github.com/san-kum/signsim/internal/automation"
	"github.com/san-kum/signsim/internal/config"
	"github.com/san-kum/signsim/internal/export"
	"github.com/san-kum/signsim/internal/metrics"
	"github.com/san-kum/signsim/internal/optim"
	"github.com/san-kum/signsim/internal/signsim"
	"github.com/san-kum/signsim/internal/storage"
	"github.com/san-kum/signsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	positions  string
	bodiesFile string
	axis       string
	steps      int
	workers    int
	name       string
	save       bool
	plot       bool
	asJSON     bool
	withCycle  bool
	allAxes    bool
	cycleLimit int
	spread     int
	trials     int
	seed       int64
	plotWidth  int
	plotHeight int
	body       int
	outFile    string
	numBodies  int
	gridMin    int
	gridMax    int
	objective  string

	scenarioWorkers int
	scenarioSave    bool
	svgWidth        int
	svgHeight       int
	portraitWidth   int
	portraitHeight  int
	searchLimit     int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "signsim"})

func main() {
	rootCmd := &cobra.Command{
		Use:           "signsim",
		Short:         "one-dimensional sign-gravity body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [-- positions...]",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSystemFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines per step (0 = all CPUs)")
	runCmd.Flags().StringVar(&name, "name", "", "run name")
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under --data")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energies after the run")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the trajectory as JSON")
	runCmd.Flags().BoolVar(&withCycle, "cycle", false, "also record the cycle length")
	runCmd.Flags().IntVar(&cycleLimit, "limit", config.DefaultCycleLimit, "cycle search limit for --cycle")

	cycleCmd := &cobra.Command{
		Use:   "cycle [-- positions...]",
		Short: "find the number of steps until the system repeats",
		RunE:  findCycle,
	}
	addSystemFlags(cycleCmd)
	cycleCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines per step (0 = all CPUs)")
	cycleCmd.Flags().IntVar(&cycleLimit, "limit", config.DefaultCycleLimit, "give up after this many steps per axis (0 = never)")
	cycleCmd.Flags().BoolVar(&allAxes, "all-axes", false, "combine the x, y and z cycles of --bodies")

	perturbCmd := &cobra.Command{
		Use:   "perturb [-- positions...]",
		Short: "measure cycle lengths of randomly shifted systems",
		RunE:  runPerturb,
	}
	addSystemFlags(perturbCmd)
	perturbCmd.Flags().IntVar(&spread, "spread", 2, "maximum shift per body")
	perturbCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	perturbCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	perturbCmd.Flags().IntVar(&cycleLimit, "limit", config.DefaultCycleLimit, "cycle search limit per trial")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energies and positions of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export body worldlines of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "show energy periods and a phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&body, "body", 0, "body for the phase portrait")
	analyzeCmd.Flags().IntVar(&portraitWidth, "width", 60, "portrait width")
	analyzeCmd.Flags().IntVar(&portraitHeight, "height", 15, "portrait height")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "search a grid of initial positions for an extreme run",
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&numBodies, "bodies", 3, "number of bodies")
	searchCmd.Flags().IntVar(&gridMin, "min", -3, "lowest initial position")
	searchCmd.Flags().IntVar(&gridMax, "max", 3, "highest initial position")
	searchCmd.Flags().StringVar(&objective, "objective", "cycle", "cycle, peak_potential or peak_kinetic")
	searchCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "steps per run for peak objectives")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 100_000, "cycle search limit per configuration")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "step through a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every simulation described in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&scenarioWorkers, "workers", 0, "concurrent runs (0 = unlimited)")
	scenarioCmd.Flags().BoolVar(&scenarioSave, "save", false, "store every run under --data")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOSITIONS\tSTEPS")
			for _, n := range config.ListPresets() {
				p := config.GetPreset(n)
				fmt.Fprintf(w, "%s\t%v\t%d\n", n, p.Positions, p.Steps)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, cycleCmd, perturbCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, searchCmd, viewCmd, scenarioCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVarP(&positions, "positions", "p", "", "initial positions, e.g. \"-1,1\"")
	cmd.Flags().StringVar(&bodiesFile, "bodies", "", "file of <x=.., y=.., z=..> lines")
	cmd.Flags().StringVar(&axis, "axis", "x", "axis to take from --bodies")
}

// resolveConfig layers preset < config file < flags < positional args.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if configFile != "" {
		fileCfg, err := config.Read(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Override(fileCfg)
		logger.Debug("loaded config", "path", configFile, "bodies", len(fileCfg.Positions))
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("name") {
		cfg.Name = name
	}
	if flags.Changed("limit") {
		cfg.CycleLimit = cycleLimit
	}
	if cmd.Root().PersistentFlags().Changed("data") {
		cfg.DataDir = dataDir
	}

	if bodiesFile != "" {
		a, err := config.ParseAxis(axis)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(bodiesFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg.Positions, err = config.ParseBodies(f, a)
		if err != nil {
			return nil, err
		}
	}

	text := positions
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}
	if text != "" {
		p, err := config.ParsePositions(text)
		if err != nil {
			return nil, err
		}
		cfg.Positions = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) *signsim.Simulator {
	return signsim.New(signsim.WithWorkers(cfg.Workers))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sim := newSimulator(cfg)
	for _, m := range metrics.Defaults(cfg.Positions) {
		sim.AddMetric(m)
	}

	logger.Debug("running", "bodies", len(cfg.Positions), "steps", cfg.Steps, "workers", sim.Workers())
	start := time.Now()

	traj, err := sim.Run(cmd.Context(), cfg.Positions, cfg.Steps)
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "steps", traj.Steps(), "elapsed", time.Since(start))

	m := storage.NewMetadata(cfg.Name, sim.Workers(), traj)
	if withCycle {
		n, err := sim.CycleLength(cmd.Context(), cfg.Positions, cfg.CycleLimit)
		switch {
		case errors.Is(err, signsim.ErrNoCycle):
			logger.Warn("no repeat found", "limit", cfg.CycleLimit)
		case err != nil:
			return err
		default:
			m.CycleLength = n
			traj.Metrics["cycle_length"] = float64(n)
		}
	}

	var meta *storage.RunMetadata
	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if err := st.Save(m, traj); err != nil {
			return err
		}
		meta = &m
		logger.Info("saved run", "id", m.ID, "dir", cfg.DataDir)
	}

	if asJSON {
		return storage.ExportJSON(os.Stdout, meta, traj)
	}

	fmt.Println(viz.Summary(cfg.Name, traj))
	if plot {
		fmt.Println()
		fmt.Println(viz.EnergyPlot(traj, 80, 10))
	}
	return nil
}

func findCycle(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	if allAxes {
		lengths, total, err := combinedCycle(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		logger.Debug("cycle search finished", "elapsed", time.Since(start))
		for a, n := range lengths {
			fmt.Printf("%s cycle: %d\n", config.Axis(a), n)
		}
		fmt.Printf("cycle length: %d\n", total)
		return nil
	}

	n, err := newSimulator(cfg).CycleLength(cmd.Context(), cfg.Positions, cfg.CycleLimit)
	if errors.Is(err, signsim.ErrNoCycle) {
		return fmt.Errorf("no repeat within %d steps", cfg.CycleLimit)
	}
	if err != nil {
		return err
	}

	logger.Debug("cycle search finished", "elapsed", time.Since(start))
	fmt.Printf("cycle length: %d\n", n)
	return nil
}

// combinedCycle reads every axis of the --bodies file and returns the
// per-axis cycles with their least common multiple.
func combinedCycle(ctx context.Context, cfg *config.Config) ([]int, int, error) {
	if bodiesFile == "" {
		return nil, 0, errors.New("--all-axes needs --bodies")
	}
	f, err := os.Open(bodiesFile)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	axes, err := config.ParseAxes(f)
	if err != nil {
		return nil, 0, err
	}

	sim := newSimulator(cfg)
	lengths, err := sim.AxisCycles(ctx, axes, cfg.CycleLimit)
	if errors.Is(err, signsim.ErrNoCycle) {
		return nil, 0, fmt.Errorf("no repeat within %d steps: %w", cfg.CycleLimit, err)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := signsim.LCM(lengths...)
	if err != nil {
		return nil, 0, err
	}
	return lengths, total, nil
}

func runPerturb(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunPerturbations(cmd.Context(), &automation.PerturbationConfig{
		Base:       cfg.Positions,
		Spread:     spread,
		NumTrials:  trials,
		CycleLimit: cfg.CycleLimit,
		Seed:       seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tPOSITIONS\tCYCLE")
	for _, r := range results {
		cycle := "-"
		if r.Periodic {
			cycle = fmt.Sprint(r.CycleLength)
		}
		fmt.Fprintf(w, "%d\t%v\t%s\n", r.TrialID, r.Initial, cycle)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	periodic, open, longest := automation.PerturbationStats(results)
	fmt.Printf("\nperiodic: %d  open: %d  longest cycle: %d\n", periodic, open, longest)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tSTEPS\tWORKERS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Workers,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *signsim.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	traj.Metrics = meta.Metrics
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d  steps: %d\n\n", traj.Bodies(), traj.Steps())
	fmt.Println(viz.EnergyPlot(traj, plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(viz.PositionPlot(traj, plotWidth, plotHeight))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, traj)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.Worldlines(traj, svgWidth, svgHeight)
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote svg", "path", outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	points, err := analysis.PhasePortrait(traj, body)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.CycleLength > 0 {
		fmt.Printf("cycle length: %d\n", meta.CycleLength)
	}
	fmt.Printf("potential energy period: %d\n", analysis.DominantPeriod(traj.PotentialEnergies()))
	fmt.Printf("kinetic energy period:   %d\n", analysis.DominantPeriod(traj.KineticEnergies()))
	fmt.Printf("\nbody %d phase portrait (%d distinct states)\n", body, analysis.DistinctStates(points))
	fmt.Print(analysis.PhasePortraitToASCII(points, portraitWidth, portraitHeight))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	grid, err := optim.NewGridSearch(numBodies, gridMin, gridMax)
	if err != nil {
		return err
	}

	var obj optim.Objective
	switch objective {
	case "cycle":
		obj = optim.LongestCycle(searchLimit)
	case "peak_potential":
		obj = optim.PeakMetric(steps, func() signsim.Metric { return metrics.NewPeakPotential() })
	case "peak_kinetic":
		obj = optim.PeakMetric(steps, func() signsim.Metric { return metrics.NewPeakKinetic() })
	default:
		return fmt.Errorf("unknown objective: %s", objective)
	}

	logger.Debug("searching", "configurations", grid.Size(), "objective", objective)
	start := time.Now()

	best, score, err := grid.Search(cmd.Context(), obj)
	if err != nil {
		return err
	}

	logger.Info("search complete", "elapsed", time.Since(start))
	fmt.Printf("best: %v  %s: %g\n", best, objective, -score)
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return viz.RunStepper(meta.ID, traj)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("running scenario", "name", sc.Name, "runs", len(sc.Runs))

	results, err := automation.RunScenario(cmd.Context(), sc, scenarioWorkers, nil)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if scenarioSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	summary := make([]map[string]any, 0, len(results))
	for _, r := range results {
		entry := map[string]any{
			"name":            r.Name,
			"bodies":          r.Trajectory.Bodies(),
			"steps":           r.Trajectory.Steps(),
			"final_positions": r.Trajectory.Final().Positions(),
			"final_potential": r.Trajectory.Final().PotentialEnergy(),
			"final_kinetic":   r.Trajectory.Final().KineticEnergy(),
		}
		if scenarioSave {
			meta := storage.NewMetadata(r.Name, 1, r.Trajectory)
			if err := st.Save(meta, r.Trajectory); err != nil {
				return err
			}
			entry["id"] = meta.ID
		}
		summary = append(summary, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
