// Package newton drives a one-dimensional atmosphere to radiative-convective
// equilibrium with a damped Newton-Raphson iteration.
//
// 🚀 What does the driver solve?
//
//	An atmosphere is a temperature profile T over pressure levels. In
//	radiative regions the net flux through each level must vanish; in
//	convective zones the profile follows the adiabat, so only the radiative
//	levels are free unknowns. Solve hunts the root of
//
//	  F(T_active) = net flux at the active radiative levels,
//
//	where each trial profile is rebuilt zone by zone: radiative levels take
//	the trial temperatures directly, convective levels integrate downward
//	through d(lnT)/d(lnP) from the lapse table (dry or moist).
//
// ✨ The globally-convergent recipe
//
//	Each outer iteration assembles the residual, builds a finite-difference
//	Jacobian column by column (optionally in parallel — the flux kernel must
//	be pure), solves J·p = -F through the shared LU routines, caps the step
//	norm, and backtracks along p with quadratic/cubic line-search models
//	until the Armijo condition holds. Convergence is a three-stage chain:
//	residual below TolF, then a gradient-stationarity check guarding the
//	small-step exit (a failure flags a suspect local minimum), then the
//	relative temperature change against TolX.
//
// The visible net flux is evaluated once per solve and held fixed through
// the iteration; only the thermal band is re-evaluated per trial profile.
// Trial temperatures clamp to the table's valid range, and a NaN profile
// resets to the previous iterate plus half a kelvin rather than aborting.
//
// Solve mutates the caller's temperature slice in place and reports the
// terminal Status (Converged, Exhausted, or Continuing on cancellation)
// instead of treating a stalled iteration as an error.
package newton
