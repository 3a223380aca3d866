package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/signsim/internal/signsim"
)

// maxPlottedBodies caps PositionPlot; more series than this are unreadable.
const maxPlottedBodies = 8

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue,
	asciigraph.Magenta, asciigraph.Cyan, asciigraph.White, asciigraph.AnsiColor(208),
}

// EnergyPlot charts potential and kinetic energy over the trajectory.
func EnergyPlot(traj *signsim.Trajectory, width, height int) string {
	series := [][]float64{
		toFloat64s(traj.PotentialEnergies()),
		toFloat64s(traj.KineticEnergies()),
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("potential (red) / kinetic (green) energy"),
	)
}

// PositionPlot charts the position of each body, up to eight of them.
func PositionPlot(traj *signsim.Trajectory, width, height int) string {
	n := min(traj.Bodies(), maxPlottedBodies)
	series := make([][]float64, n)
	for i := 0; i < n; i++ {
		pos, _ := traj.Body(i)
		series[i] = toFloat64s(pos)
	}

	caption := "body positions"
	if traj.Bodies() > n {
		caption = fmt.Sprintf("body positions (first %d of %d)", n, traj.Bodies())
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(seriesColors[:n]...),
		asciigraph.Caption(caption),
	)
}

func toFloat64s(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
