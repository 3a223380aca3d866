// Package signsim simulates one-dimensional bodies under sign gravity.
//
// Every body is pulled toward every other body by exactly one unit of
// velocity per step, in the direction of the other body: the velocity
// change of body i is the sum over all bodies j of sign(p[j] - p[i]).
// Positions and velocities are integers throughout.
//
//   - [Snapshot]: immutable positions and velocities at one step
//   - [Trajectory]: snapshots for steps 0..n with their energy series
//   - [Simulator]: runs the step loop, optionally fanning the per-body
//     work of a single step out over several goroutines
//   - [Ensemble]: runs independent simulations concurrently
//
// # Example
//
//	traj, err := signsim.Simulate([]int{-1, 1}, 3)
//	if err != nil {
//		return err
//	}
//	fmt.Println(traj.Positions(), traj.PotentialEnergies())
//
// # Thread Safety
//
// Snapshots and trajectories are read-only once built and can be shared.
// A Simulator with metrics attached is NOT thread-safe; give each
// goroutine its own, as [Ensemble] does.
package signsim
