package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/signsim/internal/signsim"
)

var strokeColors = []string{
	"#ff5f5f", "#5fafff", "#87d75f", "#ffd75f", "#d787ff", "#5fd7d7", "#ff875f", "#afafaf",
}

// Worldlines draws every body of traj as a polyline with time across and
// position up.
func Worldlines(traj *signsim.Trajectory, width, height int) string {
	if traj == nil || width < 1 || height < 1 {
		return ""
	}

	positions := traj.Positions()
	lo, hi := positions[0][0], positions[0][0]
	for _, row := range positions {
		for _, p := range row {
			lo, hi = min(lo, p), max(hi, p)
		}
	}

	// Add padding
	pad := max((hi-lo)/10, 1)
	lo -= pad
	hi += pad
	rangeY := float64(hi - lo)
	rangeX := float64(max(traj.Steps(), 1))

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if lo <= 0 && hi >= 0 {
		y := float64(height) - float64(-lo)/rangeY*float64(height)
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#303030" stroke-width="1"/>
`, y, width, y)
	}

	for body := 0; body < traj.Bodies(); body++ {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColors[body%len(strokeColors)])
		for step, row := range positions {
			x := float64(step) / rangeX * float64(width)
			y := float64(height) - float64(row[body]-lo)/rangeY*float64(height)
			if step == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
