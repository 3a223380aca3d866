// Package analysis inspects finished trajectories.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectral view of an energy series
//   - [PhasePortrait]: position against velocity for one body
//   - [PhasePortraitToASCII]: terminal rendering of a portrait
//
// # Periods
//
// A bounded system always returns to its start, and [signsim.CycleLength]
// finds that exactly. The spectrum is cheaper on long stored runs and also
// shows shorter periods hidden in the energies:
//
//	p := analysis.DominantPeriod(traj.PotentialEnergies())
package analysis
