package viz

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/signsim/internal/signsim"
)

// SeriesStats summarizes one energy series.
type SeriesStats struct {
	Min, Max     float64
	Mean, StdDev float64
}

func StatsOf(xs []int) SeriesStats {
	if len(xs) == 0 {
		return SeriesStats{}
	}
	f := toFloat64s(xs)
	return SeriesStats{
		Min:    floats.Min(f),
		Max:    floats.Max(f),
		Mean:   stat.Mean(f, nil),
		StdDev: stat.PopStdDev(f, nil),
	}
}

// Summary renders run statistics and any attached metrics as a table.
func Summary(title string, traj *signsim.Trajectory) string {
	pe := StatsOf(traj.PotentialEnergies())
	ke := StatsOf(traj.KineticEnergies())
	final := traj.Final()

	rows := [][]string{
		{"bodies", strconv.Itoa(traj.Bodies())},
		{"steps", strconv.Itoa(traj.Steps())},
		{"final positions", fmt.Sprint(final.Positions())},
		{"final velocities", fmt.Sprint(final.Velocities())},
		{"potential min/max", fmt.Sprintf("%.0f / %.0f", pe.Min, pe.Max)},
		{"potential mean ± sd", fmt.Sprintf("%.2f ± %.2f", pe.Mean, pe.StdDev)},
		{"kinetic min/max", fmt.Sprintf("%.0f / %.0f", ke.Min, ke.Max)},
		{"kinetic mean ± sd", fmt.Sprintf("%.2f ± %.2f", ke.Mean, ke.StdDev)},
		{"total energy (final)", strconv.Itoa(final.TotalEnergy())},
	}

	names := make([]string, 0, len(traj.Metrics))
	for name := range traj.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, []string{name, strconv.FormatFloat(traj.Metrics[name], 'g', 6, 64)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers("quantity", "value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TitleStyle.Padding(0, 1)
			case col == 0:
				return MetricLabel.Padding(0, 1)
			}
			return MetricValue.Padding(0, 1)
		})

	return TitleStyle.Render(title) + "\n" + t.Render()
}
