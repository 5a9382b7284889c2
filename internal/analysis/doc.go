// Package analysis reduces a site collection to its aggregate
// observables.
//
// The reductions are pure functions over the moment arena:
//
//   - [Magnetization]: Landé-weighted mean spin
//   - [Energy]: Zeeman energy against the current pulsation vectors
//   - [Torque]: mean precession torque
//   - [SpinTemperature]: torque-based temperature estimator
//   - [Susceptibility]: mean second-moment covariance
//
// Every function takes the slice read-only; callers must not run them
// concurrently with a sweep that mutates the moments.
package analysis
