// Package lapse provides adiabatic lapse rates and heat capacities for
// convective regions of a planetary atmosphere.
//
// 🚀 What is lapse?
//
//	The convective half of a radiative-convective equilibrium solver:
//	wherever heat transport is convective, the temperature profile follows
//	the adiabat dlnT/dlnP = ∇_ad(T,P). This package evaluates ∇_ad two ways:
//	  • GradCp      — bilinear interpolation on a tabulated (T,P) grid of
//	    non-ideal gradients and log10 heat capacities (the dry adiabat)
//	  • MoistGradCp — an experimental moist adiabat that folds latent-heat
//	    release of condensing species (H2O, CH4, NH3, Fe) into the dry value
//
// Table lookups never extrapolate: queries outside the grid clamp the blend
// factor to the boundary, a documented accuracy caveat rather than an error.
//
// The tabulated grid itself is loaded from YAML via LoadTable (the shipped
// grid is 53 temperature × 26 pressure nodes, both axes in log10 space) or
// built in memory via NewTable.
//
// Complexity:
//
//   - Locate:         O(log n) bisection
//   - GradCp:         O(log n) — two Locate calls plus constant-time blending
//   - MoistGradCp:    O(s) over the tracked species list
//   - LayerGradients: O(nlayer · log n)
//
// See example_test.go for a runnable walkthrough.
package lapse
