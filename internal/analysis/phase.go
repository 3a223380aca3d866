package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/signsim/internal/signsim"
)

// Point is one (position, velocity) pair.
type Point struct{ X, Y int }

// PhasePortrait records position against velocity for one body at every
// step of traj.
func PhasePortrait(traj *signsim.Trajectory, body int) ([]Point, error) {
	if body < 0 || body >= traj.Bodies() {
		return nil, fmt.Errorf("analysis: body %d out of range [0, %d)", body, traj.Bodies())
	}

	positions, velocities := traj.Body(body)
	points := make([]Point, len(positions))
	for i := range positions {
		points[i] = Point{X: positions[i], Y: velocities[i]}
	}
	return points, nil
}

// DistinctStates counts the distinct points of a portrait.
func DistinctStates(points []Point) int {
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// PhasePortraitToASCII draws points on a width x height grid with position
// across and velocity up. Axes are drawn where zero is visible.
func PhasePortraitToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 1 || height < 1 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := max(maxX-minX, 1)
	rangeY := max(maxY-minY, 1)
	col := func(x int) int { return (x - minX) * (width - 1) / rangeX }
	row := func(y int) int { return height - 1 - (y-minY)*(height-1)/rangeY }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		canvas[row(p.Y)][col(p.X)] = '•'
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
