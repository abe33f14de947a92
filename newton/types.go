package newton

import (
	"errors"

	"github.com/katalvlaran/radeq/lapse"
	"go.uber.org/zap"
)

// Sentinel errors returned by Solve before iteration starts.
var (
	// ErrNilEngine indicates a nil flux engine.
	ErrNilEngine = errors.New("newton: flux engine must not be nil")

	// ErrNilTable indicates a nil lapse-rate table.
	ErrNilTable = errors.New("newton: lapse table must not be nil")

	// ErrNilZones indicates a nil zone map.
	ErrNilZones = errors.New("newton: zone map must not be nil")

	// ErrBadProfile indicates temperature/pressure arrays of unequal length,
	// fewer than two levels, a level count disagreeing with the zone map,
	// or a zone map with no radiative levels to solve.
	ErrBadProfile = errors.New("newton: invalid level profile")

	// ErrBadTidal indicates a tidal-heating vector of the wrong length.
	ErrBadTidal = errors.New("newton: invalid tidal heating vector")

	// ErrBadOptions indicates non-positive tolerances, iteration budget,
	// perturbation scale, or an empty temperature clamp range.
	ErrBadOptions = errors.New("newton: invalid options")
)

// Status reports how an equilibrium solve ended.
type Status int

const (
	// Continuing means the solve was interrupted before any terminal state
	// (context cancellation); the profile is the best effort so far.
	Continuing Status = iota

	// Converged means a tolerance test passed: the profile balances flux.
	Converged

	// Exhausted means the iteration budget ran out; the profile is the best
	// effort so far. Escalation (more iterations, looser tolerance, zone
	// adjustment) is the caller's choice.
	Exhausted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Continuing:
		return "continuing"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Options configures the Newton-Raphson driver.
//
// The tolerance family follows the classic globally-convergent scheme:
// TolF bounds the residual flux fraction, TolX the relative temperature
// step, TolMin the gradient-stationarity test on the small-step exit, and
// Alf the sufficient-decrease slope of the Armijo condition.
type Options struct {
	// ItMax caps outer Newton iterations.
	ItMax int

	// TolF is the flux residual tolerance (fraction of the top tidal flux).
	TolF float64

	// TolX is the relative temperature-change tolerance.
	TolX float64

	// TolMin is the gradient-stationarity tolerance on the small-step exit.
	TolMin float64

	// Alf is the Armijo sufficient-decrease parameter.
	Alf float64

	// Eps scales the Jacobian temperature perturbation: δ = max(Eps·T, 3 K).
	Eps float64

	// StepScale caps the Newton step 2-norm at
	// StepScale·max(sqrt(ΣT²), n_total).
	StepScale float64

	// TMin and TMax bound trial temperatures; out-of-range levels clamp to
	// TMin+0.1 and TMax-0.1.
	TMin, TMax float64

	// RFacIR and RFacVis mix the thermal and visible net fluxes into the
	// total balance.
	RFacIR, RFacVis float64

	// Moist selects the moist adiabat for convective integration when
	// non-nil; nil uses the dry table adiabat.
	Moist lapse.Composition

	// Workers bounds concurrent Jacobian column evaluations; values below 2
	// keep construction serial. Requires a pure flux kernel.
	Workers int

	// Logger receives per-iteration diagnostics; nil disables logging.
	Logger *zap.Logger

	// SaveProfiles records the profile at the start of every iteration in
	// Result.Profiles.
	SaveProfiles bool
}

// DefaultOptions returns the solver defaults: tolf 5e-3, tolx = tolf,
// tolmin 1e-5, alf 1e-4, eps 1e-4, step scale 0.01, pure thermal balance,
// serial Jacobian.
func DefaultOptions() Options {
	return Options{
		ItMax:     100,
		TolF:      5e-3,
		TolX:      5e-3,
		TolMin:    1e-5,
		Alf:       1e-4,
		Eps:       1e-4,
		StepScale: 0.01,
		TMin:      40.0,
		TMax:      4100.0,
		RFacIR:    1.0,
		RFacVis:   0.0,
		Workers:   1,
	}
}

// validate reports the first options violation.
func (o Options) validate() error {
	switch {
	case o.ItMax < 1:
		return errors.Join(ErrBadOptions, errors.New("ItMax must be ≥ 1"))
	case o.TolF <= 0 || o.TolX <= 0 || o.TolMin <= 0:
		return errors.Join(ErrBadOptions, errors.New("tolerances must be positive"))
	case o.Alf <= 0 || o.Eps <= 0 || o.StepScale <= 0:
		return errors.Join(ErrBadOptions, errors.New("Alf, Eps and StepScale must be positive"))
	case o.TMin <= 0 || o.TMax <= o.TMin+0.2:
		return errors.Join(ErrBadOptions, errors.New("temperature clamp range is empty"))
	}

	return nil
}

// Result carries the outcome of a solve. Temp aliases the caller's
// temperature slice, which Solve mutates in place.
type Result struct {
	// Temp is the final (converged or best-effort) temperature profile.
	Temp []float64

	// Lapse is the per-layer dlnT/dlnP of the final profile.
	Lapse []float64

	// Status reports how the solve ended.
	Status Status

	// Iterations is the number of outer iterations consumed.
	Iterations int

	// NetIR and NetIRLayer are the final broadband thermal fluxes per level
	// and per layer midpoint.
	NetIR, NetIRLayer []float64

	// TopUpIR is the per-bin upward thermal flux at the top of atmosphere.
	TopUpIR []float64

	// SuspectMinimum is set when convergence was declared on the small-step
	// exit but the gradient-stationarity test failed — the profile may sit
	// at a local minimum of the merit function rather than a flux root.
	SuspectMinimum bool

	// Profiles is the iteration history (one snapshot per outer iteration)
	// when Options.SaveProfiles is set.
	Profiles [][]float64
}
