// Package radeq computes radiative-convective equilibrium temperature
// profiles for planetary atmospheres — the iterative core that drives a
// guessed T(P) profile toward zero net radiative flux.
//
// 🚀 What is radeq?
//
//	A focused numeric library that brings together:
//		• lapse:   table-interpolated adiabatic gradients + an experimental moist adiabat
//		• lusolve: dense LU with row-scaled partial pivoting over an active submatrix
//		• zones:   radiative/convective zone-boundary bookkeeping
//		• flux:    broadband flux assembly over correlated-k bins, patchy clouds included
//		• newton:  a globally-convergent damped Newton–Raphson driver with line search
//
// ✨ Why choose radeq?
//
//   - Explicit state – every vector (temperature, residual, step) is threaded
//     through arguments and results; no package-level mutable state
//   - Honest failure modes – non-convergence is a status, never a panic;
//     singular Jacobians surface as sentinel errors
//   - Pluggable physics – the expensive two-stream kernels stay behind an
//     interface, so the solver core is testable with cheap stubs
//
// The atmosphere/opacity setup that produces optical-depth and scattering
// arrays, the two-stream kernels themselves, and any CLI or plotting layer
// live outside this module. radeq owns only the equilibrium iteration.
//
//	go get github.com/katalvlaran/radeq
package radeq
