package newton

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/radeq/flux"
	"github.com/katalvlaran/radeq/lapse"
	"github.com/katalvlaran/radeq/lusolve"
	"github.com/katalvlaran/radeq/zones"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve iterates the temperature profile toward radiative-convective
// equilibrium and mutates temp in place. The zone map partitions the levels;
// only the radiative levels are free unknowns, convective levels follow the
// adiabat from tbl (moist when opts.Moist is set). tidal is the per-level
// internal heat flux added to the radiative balance; its top entry scales
// the fast-path balance test, and with a zero top entry the fast path
// requires an exactly zero residual.
//
// A stalled or budget-exhausted iteration is reported through Result.Status,
// not as an error. Errors cover invalid inputs, flux-kernel failures, a
// singular Jacobian and context cancellation.
func Solve(ctx context.Context, press, temp []float64, zm *zones.Map, eng *flux.Engine,
	tbl *lapse.Table, tidal []float64, opts Options) (Result, error) {

	if eng == nil {
		return Result{}, ErrNilEngine
	}
	if tbl == nil {
		return Result{}, ErrNilTable
	}
	if zm == nil {
		return Result{}, ErrNilZones
	}

	nlevel := len(temp)
	if nlevel < 2 || len(press) != nlevel {
		return Result{}, fmt.Errorf("%w: %d temperatures, %d pressures", ErrBadProfile, nlevel, len(press))
	}
	if zm.NLevel() != nlevel {
		return Result{}, fmt.Errorf("%w: zone map covers %d levels, profile has %d", ErrBadProfile, zm.NLevel(), nlevel)
	}
	if err := zm.Validate(); err != nil {
		return Result{}, err
	}
	if len(tidal) != nlevel {
		return Result{}, fmt.Errorf("%w: %d entries for %d levels", ErrBadTidal, len(tidal), nlevel)
	}
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	active := zm.RadiativeLevels()
	if len(active) == 0 {
		return Result{}, fmt.Errorf("%w: zone map leaves no radiative levels", ErrBadProfile)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	n := len(active)
	s := &solver{
		press:  press,
		temp:   temp,
		tidal:  tidal,
		zm:     zm,
		eng:    eng,
		tbl:    tbl,
		o:      opts,
		log:    log,
		active: active,
		n:      n,
		nlevel: nlevel,
		jac:    mat.NewDense(n, n, nil),
		fvec:   make([]float64, n),
		g:      make([]float64, n),
		p:      make([]float64, n),
		net:    make([]float64, nlevel),
		netMid: make([]float64, nlevel),
	}

	return s.run(ctx)
}

// solver carries the per-solve state: immutable inputs, the active-level
// index set, and the scratch vectors the iteration rewrites in place.
type solver struct {
	press, temp, tidal []float64
	zm                 *zones.Map
	eng                *flux.Engine
	tbl                *lapse.Table
	o                  Options
	log                *zap.Logger

	active []int // radiative level indices, in order
	n      int
	nlevel int

	jac          *mat.Dense
	fvec, g, p   []float64
	net, netMid  []float64 // total balance: RFacIR·IR + RFacVis·vis + tidal
	irNet        []float64
	irNetMid     []float64
	upIR         [][]float64
	f            float64 // merit: 0.5·Σ fvec²
	profiles     [][]float64
}

// run executes the outer Newton iteration.
func (s *solver) run(ctx context.Context) (Result, error) {
	base, err := s.eng.Compute(s.temp, s.press, flux.Bands{Reflected: s.o.RFacVis != 0, Thermal: true})
	if err != nil {
		return s.result(Continuing, 0, false), fmt.Errorf("newton: base flux: %w", err)
	}

	// visible flux is held fixed through the iteration
	visNet, visNetMid := base.NetVis, base.NetVisLayer
	s.irNet, s.irNetMid, s.upIR = base.NetIR, base.NetIRLayer, base.UpIR

	for its := 0; its < s.o.ItMax; its++ {
		if err = ctx.Err(); err != nil {
			return s.result(Continuing, its, false), err
		}

		s.mixNet(visNet, visNetMid)
		test := s.assembleResidual()

		beta := clone(s.temp)
		tempOld := clone(s.temp)
		irNetOld := clone(s.irNet)
		irNetMidOld := clone(s.irNetMid)
		if s.o.SaveProfiles {
			s.profiles = append(s.profiles, tempOld)
		}

		balanced := test == 0
		if !balanced && s.tidal[0] != 0 {
			balanced = test/math.Abs(s.tidal[0]) < 0.01*s.o.TolF
		}
		if balanced {
			s.log.Info("flux already balanced",
				zap.Int("iteration", its), zap.Float64("maxResidual", test))

			return s.result(Converged, its, false), nil
		}

		var sumT2 float64
		for _, lvl := range s.active {
			sumT2 += tempOld[lvl] * tempOld[lvl]
		}
		stepMax := s.o.StepScale * math.Max(math.Sqrt(sumT2), float64(s.n))

		if err = s.buildJacobian(ctx, beta, tempOld, irNetOld, irNetMidOld); err != nil {
			return s.result(Continuing, its, false), err
		}

		// g = Jᵀ·F before the factorization destroys J, p = -F
		for i := 0; i < s.n; i++ {
			var sum float64
			for j := 0; j < s.n; j++ {
				sum += s.jac.At(j, i) * s.fvec[j]
			}
			s.g[i] = sum
			s.p[i] = -s.fvec[i]
		}
		fOld := s.f

		piv, derr := lusolve.Decompose(s.jac, s.n)
		if derr != nil {
			return s.result(Continuing, its, false), fmt.Errorf("newton: jacobian factorization: %w", derr)
		}
		lusolve.Solve(s.jac, piv, s.p, s.n)

		// cap the step so deep-level corrections cannot run away
		if s.n > 2 {
			if nrm := floats.Norm(s.p[2:s.n], 2); nrm > stepMax {
				floats.Scale(stepMax/nrm, s.p[:s.n])
			}
		}

		slope := floats.Dot(s.g[:s.n], s.p[:s.n])
		var rel float64
		for k, lvl := range s.active {
			if r := math.Abs(s.p[k]) / tempOld[lvl]; r > rel {
				rel = r
			}
		}
		alamin := s.o.TolX / rel

		status, suspect, lerr := s.lineSearch(beta, tempOld, visNet, visNetMid, fOld, slope, alamin)
		if lerr != nil {
			return s.result(Continuing, its, false), lerr
		}

		s.log.Debug("newton iteration",
			zap.Int("iteration", its),
			zap.Float64("merit", s.f),
			zap.Float64("maxResidual", test),
			zap.Stringer("status", status))

		if status == Converged {
			return s.result(Converged, its+1, suspect), nil
		}
	}

	s.log.Warn("iteration budget exhausted", zap.Int("itMax", s.o.ItMax))

	return s.result(Exhausted, s.o.ItMax, false), nil
}

// mixNet combines the fixed visible flux, the current thermal flux and the
// tidal heating into the total balance per level and per layer midpoint.
func (s *solver) mixNet(visNet, visNetMid []float64) {
	for l := 0; l < s.nlevel; l++ {
		s.net[l] = s.o.RFacIR*s.irNet[l] + s.o.RFacVis*visNet[l] + s.tidal[l]
		s.netMid[l] = s.o.RFacIR*s.irNetMid[l] + s.o.RFacVis*visNetMid[l] + s.tidal[l]
	}
}

// assembleResidual maps the total balance onto the compact active set: the
// first entry is the level flux at the topmost radiative level, every other
// entry the layer-midpoint flux just above its level. Updates s.fvec and the
// merit s.f, and returns the max-norm of the residual.
func (s *solver) assembleResidual() float64 {
	var test float64
	s.f = 0
	for k, lvl := range s.active {
		r := s.net[lvl]
		if k > 0 {
			r = s.netMid[lvl-1]
		}
		s.fvec[k] = r
		s.f += r * r
		if a := math.Abs(r); a > test {
			test = a
		}
	}
	s.f *= 0.5

	return test
}

// rebuild writes the trial profile beta + alam·p into dst: active radiative
// levels take the stepped temperatures, convective levels integrate the
// adiabat downward from the level above. p may be nil for a reconstruction
// of beta alone. dst must already hold a full profile; levels above the top
// zone and below the deepest one are left as they are.
func (s *solver) rebuild(beta, p []float64, alam float64, dst []float64) {
	k := 0
	for zi := 0; zi < s.zm.Len(); zi++ {
		z, _ := s.zm.Zone(zi)
		start := z.RadTop
		if zi > 0 {
			start = z.RadTop + 1
		}
		for j := start; j <= z.ConvTop; j++ {
			v := beta[j]
			if p != nil {
				v += alam * p[k]
			}
			dst[j] = v
			k++
		}
		for j := z.ConvTop + 1; j <= z.ConvBot+1; j++ {
			grad := s.gradAt(dst[j-1], math.Sqrt(s.press[j-1]*s.press[j]))
			dst[j] = math.Exp(math.Log(dst[j-1]) + grad*math.Log(s.press[j]/s.press[j-1]))
		}
	}
}

// gradAt evaluates the adiabatic gradient at one layer interface.
func (s *solver) gradAt(T, P float64) float64 {
	if s.o.Moist != nil {
		g, _ := s.tbl.MoistGradCp(T, P, s.o.Moist)

		return g
	}
	g, _ := s.tbl.GradCp(T, P)

	return g
}

// clamp bounds every level to the table's safe range.
func (s *solver) clamp(dst []float64) {
	lo, hi := s.o.TMin+0.1, s.o.TMax-0.1
	for i := range dst {
		switch {
		case dst[i] < lo:
			dst[i] = lo
		case dst[i] > hi:
			dst[i] = hi
		}
	}
}

// thermal re-evaluates the thermal band for a trial profile.
func (s *solver) thermal(profile []float64) (*flux.Bundle, error) {
	return s.eng.Compute(profile, s.press, flux.Bands{Thermal: true})
}

// result assembles the outcome around the current profile and flux state.
func (s *solver) result(st Status, iters int, suspect bool) Result {
	nlayer := s.nlevel - 1
	dtdp := make([]float64, nlayer)
	for j := 0; j < nlayer; j++ {
		dtdp[j] = math.Log(s.temp[j]/s.temp[j+1]) / math.Log(s.press[j]/s.press[j+1])
	}

	var top []float64
	if len(s.upIR) > 0 {
		top = clone(s.upIR[0])
	}

	return Result{
		Temp:           s.temp,
		Lapse:          dtdp,
		Status:         st,
		Iterations:     iters,
		NetIR:          s.irNet,
		NetIRLayer:     s.irNetMid,
		TopUpIR:        top,
		SuspectMinimum: suspect,
		Profiles:       s.profiles,
	}
}

func clone(a []float64) []float64 {
	return append([]float64(nil), a...)
}
