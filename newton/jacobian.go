package newton

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// buildJacobian fills the active n×n block of s.jac with finite differences
// of the thermal balance. Column k perturbs active level k by
// max(Eps·T, 3 K), rebuilds the convective zones below the perturbation and
// re-evaluates the thermal band. Columns are independent, so with
// Options.Workers ≥ 2 they run concurrently under an errgroup; this is only
// sound because the flux kernel is required to be pure.
func (s *solver) buildJacobian(ctx context.Context, beta, tempOld, irNetOld, irNetMidOld []float64) error {
	if s.o.Workers < 2 {
		for k := range s.active {
			if err := s.jacobianColumn(k, beta, tempOld, irNetOld, irNetMidOld); err != nil {
				return err
			}
		}

		return nil
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(s.o.Workers)
	for k := range s.active {
		k := k
		eg.Go(func() error {
			return s.jacobianColumn(k, beta, tempOld, irNetOld, irNetMidOld)
		})
	}

	return eg.Wait()
}

// jacobianColumn computes one column: each scratch profile is private, and
// writes land in a distinct column of the shared matrix.
func (s *solver) jacobianColumn(k int, beta, tempOld, irNetOld, irNetMidOld []float64) error {
	lvl := s.active[k]
	delt := math.Max(s.o.Eps*tempOld[lvl], 3.0)

	trial := clone(beta)
	trial[lvl] += delt

	profile := clone(tempOld)
	s.rebuild(trial, nil, 0, profile)

	b, err := s.thermal(profile)
	if err != nil {
		return fmt.Errorf("newton: jacobian column %d: %w", k, err)
	}

	scale := s.o.RFacIR / delt
	for r, rl := range s.active {
		d := (b.NetIR[rl] - irNetOld[rl]) * scale
		if r > 0 {
			d = (b.NetIRLayer[rl-1] - irNetMidOld[rl-1]) * scale
		}
		s.jac.Set(r, k, d)
	}

	return nil
}
