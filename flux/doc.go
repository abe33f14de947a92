// Package flux assembles broadband radiative fluxes for the equilibrium
// solver by quadrature over correlated-k sub-bins.
//
// 🚀 What is the flux engine?
//
//	The solver needs one number per level: the net radiative flux whose
//	zero it hunts. That number is built from expensive per-bin two-stream
//	solutions — reflected light in the visible, emission in the thermal —
//	which live OUTSIDE this module behind the TwoStream interface. The
//	Engine owns only the assembly:
//
//	  1. For each correlated-k gauss point, invoke the reflected and/or
//	     thermal kernel per the Bands selectors.
//	  2. In patchy-cloud mode, solve both the cloudy and the clear-sky
//	     optics and blend streams by (1-fraction)·cloudy + fraction·clear.
//	  3. Accumulate visible net flux with the gauss quadrature weights.
//	  4. Integrate thermal flux over the wavenumber bin widths into
//	     broadband level/layer IR flux plus per-bin up/down arrays.
//
// Compute is a pure function of the profile and the precomputed optics: no
// state persists between calls, so concurrent calls with distinct output
// needs are safe as long as the injected kernel is itself pure. This is the
// dominant cost center of an equilibrium solve — the Newton driver calls it
// once per outer iteration for both bands and once per perturbed level for
// thermal only.
//
// One parametrized entry point covers every variant (with/without reflected
// light, with/without patchy clouds); there are no duplicated call sites to
// keep in sync.
package flux
