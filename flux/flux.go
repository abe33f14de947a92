package flux

import "fmt"

// Engine assembles broadband fluxes from per-bin two-stream solutions.
// Construct with NewEngine; a constructed Engine is immutable and safe for
// concurrent Compute calls when the kernel is pure.
type Engine struct {
	solver   TwoStream
	optics   Optics
	clear    *Optics
	fraction float64
	widths   []float64
}

// NewEngine validates cfg and builds an Engine around the kernel.
func NewEngine(solver TwoStream, cfg Config) (*Engine, error) {
	if solver == nil {
		return nil, ErrNilSolver
	}
	if len(cfg.Optics.Bins) == 0 {
		return nil, ErrNoBins
	}
	if len(cfg.Optics.GaussWeights) != len(cfg.Optics.Bins) {
		return nil, fmt.Errorf("%w: %d weights, %d bins", ErrBinWeights, len(cfg.Optics.GaussWeights), len(cfg.Optics.Bins))
	}
	if len(cfg.BinWidths) == 0 {
		return nil, ErrBinWidths
	}
	if cfg.CloudFraction < 0 || cfg.CloudFraction > 1 {
		return nil, fmt.Errorf("%w: %g", ErrCloudFraction, cfg.CloudFraction)
	}
	if cfg.CloudFraction > 0 {
		if cfg.Clear == nil || len(cfg.Clear.Bins) != len(cfg.Optics.Bins) {
			return nil, ErrMissingClear
		}
	}

	return &Engine{
		solver:   solver,
		optics:   cfg.Optics,
		clear:    cfg.Clear,
		fraction: cfg.CloudFraction,
		widths:   cfg.BinWidths,
	}, nil
}

// Patchy reports whether patchy-cloud blending is active.
func (e *Engine) Patchy() bool { return e.fraction > 0 }

// Compute evaluates the selected bands for the given level profile and
// returns the assembled Bundle. Pure: no engine state changes.
func (e *Engine) Compute(temp, press []float64, bands Bands) (*Bundle, error) {
	nlevel := len(temp)
	if nlevel < 2 || len(press) != nlevel {
		return nil, ErrProfileShape
	}
	if !bands.Reflected && !bands.Thermal {
		return nil, ErrNoBands
	}

	nwno := len(e.widths)
	b := &Bundle{
		NetVis:      make([]float64, nlevel),
		NetVisLayer: make([]float64, nlevel),
		NetIR:       make([]float64, nlevel),
		NetIRLayer:  make([]float64, nlevel),
		UpIR:        zeros2(nlevel, nwno),
		DownIR:      zeros2(nlevel, nwno),
	}

	if bands.Reflected {
		if err := e.accumulateReflected(temp, press, b); err != nil {
			return nil, err
		}
	}
	if bands.Thermal {
		if err := e.accumulateThermal(temp, press, b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// accumulateReflected quadrature-sums visible net flux over the bins.
func (e *Engine) accumulateReflected(temp, press []float64, b *Bundle) error {
	nlevel, nwno := len(temp), len(e.widths)

	for ig := range e.optics.Bins {
		s, err := e.solveBin(temp, press, ig, e.solver.Reflected)
		if err != nil {
			return err
		}
		if err = checkStreams(s, nlevel, nwno); err != nil {
			return fmt.Errorf("%w: reflected bin %d", err, ig)
		}

		w := e.optics.GaussWeights[ig]
		for l := 0; l < nlevel; l++ {
			var net, netMid float64
			for wv := 0; wv < nwno; wv++ {
				net += s.Up[l][wv] - s.Down[l][wv]
				netMid += s.UpMid[l][wv] - s.DownMid[l][wv]
			}
			b.NetVis[l] += net * w
			b.NetVisLayer[l] += netMid * w
		}
	}

	return nil
}

// accumulateThermal quadrature-sums thermal streams over the bins and
// integrates them over the wavenumber widths into broadband IR flux.
func (e *Engine) accumulateThermal(temp, press []float64, b *Bundle) error {
	nlevel, nwno := len(temp), len(e.widths)

	up := zeros2(nlevel, nwno)
	down := zeros2(nlevel, nwno)
	upMid := zeros2(nlevel, nwno)
	downMid := zeros2(nlevel, nwno)

	for ig := range e.optics.Bins {
		s, err := e.solveBin(temp, press, ig, e.solver.Thermal)
		if err != nil {
			return err
		}
		if err = checkStreams(s, nlevel, nwno); err != nil {
			return fmt.Errorf("%w: thermal bin %d", err, ig)
		}

		w := e.optics.GaussWeights[ig]
		for l := 0; l < nlevel; l++ {
			for wv := 0; wv < nwno; wv++ {
				up[l][wv] += s.Up[l][wv] * w
				down[l][wv] += s.Down[l][wv] * w
				upMid[l][wv] += s.UpMid[l][wv] * w
				downMid[l][wv] += s.DownMid[l][wv] * w
			}
		}
	}

	for l := 0; l < nlevel; l++ {
		for wv := 0; wv < nwno; wv++ {
			dw := e.widths[wv]
			b.NetIR[l] += (up[l][wv] - down[l][wv]) * dw
			b.NetIRLayer[l] += (upMid[l][wv] - downMid[l][wv]) * dw
			b.UpIR[l][wv] = up[l][wv] * dw
			b.DownIR[l][wv] = down[l][wv] * dw
		}
	}

	return nil
}

// solveBin runs one kernel for bin ig, blending cloudy and clear solutions
// when patchy-cloud mode is active.
func (e *Engine) solveBin(temp, press []float64, ig int,
	kernel func(temp, press []float64, op *BinOptics) (Streams, error)) (Streams, error) {

	cloudy, err := kernel(temp, press, &e.optics.Bins[ig])
	if err != nil {
		return Streams{}, fmt.Errorf("flux: bin %d: %w", ig, err)
	}
	if e.fraction == 0 {
		return cloudy, nil
	}

	// both solutions must be well-shaped before element-wise blending
	nlevel, nwno := len(temp), len(e.widths)
	if err = checkStreams(cloudy, nlevel, nwno); err != nil {
		return Streams{}, fmt.Errorf("%w: bin %d", err, ig)
	}

	clear, err := kernel(temp, press, &e.clear.Bins[ig])
	if err != nil {
		return Streams{}, fmt.Errorf("flux: clear-sky bin %d: %w", ig, err)
	}
	if err = checkStreams(clear, nlevel, nwno); err != nil {
		return Streams{}, fmt.Errorf("%w: clear-sky bin %d", err, ig)
	}

	return blendStreams(cloudy, clear, e.fraction), nil
}

// blendStreams mixes cloudy and clear solutions by the cloud fraction f:
// (1-f)·cloudy + f·clear, element-wise across all four stream arrays.
func blendStreams(cloudy, clear Streams, f float64) Streams {
	out := Streams{
		Up:      zeros2(len(cloudy.Up), width(cloudy.Up)),
		Down:    zeros2(len(cloudy.Down), width(cloudy.Down)),
		UpMid:   zeros2(len(cloudy.UpMid), width(cloudy.UpMid)),
		DownMid: zeros2(len(cloudy.DownMid), width(cloudy.DownMid)),
	}
	mix := func(dst, a, b [][]float64) {
		for i := range dst {
			for j := range dst[i] {
				dst[i][j] = (1-f)*a[i][j] + f*b[i][j]
			}
		}
	}
	mix(out.Up, cloudy.Up, clear.Up)
	mix(out.Down, cloudy.Down, clear.Down)
	mix(out.UpMid, cloudy.UpMid, clear.UpMid)
	mix(out.DownMid, cloudy.DownMid, clear.DownMid)

	return out
}

// checkStreams verifies the kernel honored the nlevel × nwno contract.
func checkStreams(s Streams, nlevel, nwno int) error {
	for _, arr := range [][][]float64{s.Up, s.Down, s.UpMid, s.DownMid} {
		if len(arr) != nlevel {
			return ErrKernelShape
		}
		for _, row := range arr {
			if len(row) != nwno {
				return ErrKernelShape
			}
		}
	}

	return nil
}

func width(a [][]float64) int {
	if len(a) == 0 {
		return 0
	}

	return len(a[0])
}

func zeros2(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	return out
}
