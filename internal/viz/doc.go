// Package viz renders trajectories in the terminal.
//
//   - [EnergyPlot], [PositionPlot]: asciigraph line charts
//   - [Summary]: a lipgloss table of per-run statistics
//   - [Stepper]: a Bubble Tea viewer that walks a trajectory step by step
//
// # Stepper Key Bindings
//
//	→ l n space - Next step
//	← h p       - Previous step
//	g home      - First step
//	G end       - Last step
//	q ctrl+c    - Quit
package viz
