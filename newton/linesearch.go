package newton

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// lineSearch backtracks along the Newton direction s.p until the Armijo
// sufficient-decrease condition holds, then runs the convergence chain on
// the accepted point. It rewrites s.temp, the thermal flux state, the total
// balance, the residual and the merit in place.
//
// The first backtrack uses the quadratic model of the merit along the
// direction; later backtracks fit a cubic through the last two trials. The
// step never shrinks below a tenth of the previous one; once it drops under
// alamin the relative temperature change is below TolX anyway and the
// small-step exit decides between a root and a suspect local minimum.
func (s *solver) lineSearch(beta, tempOld, visNet, visNetMid []float64,
	fOld, slope, alamin float64) (Status, bool, error) {

	alam := 1.0
	var alam2, f2 float64
	firstTrial := true

	for {
		s.rebuild(beta, s.p, alam, s.temp)
		s.clamp(s.temp)

		salvaged := hasNaN(s.temp)
		if salvaged {
			// restart next iteration from a nudged previous profile
			for i := range s.temp {
				s.temp[i] = tempOld[i] + 0.5
			}
			s.log.Warn("trial profile went non-finite, nudging previous iterate",
				zap.Float64("step", alam))
		}

		b, err := s.thermal(s.temp)
		if err != nil {
			return Continuing, false, fmt.Errorf("newton: line search flux: %w", err)
		}
		s.irNet, s.irNetMid, s.upIR = b.NetIR, b.NetIRLayer, b.UpIR
		s.mixNet(visNet, visNetMid)
		s.assembleResidual()

		if salvaged {
			return Continuing, false, nil
		}

		if alam < alamin {
			st, suspect := s.converge(tempOld, true)

			return st, suspect, nil
		}
		if s.f <= fOld+s.o.Alf*alam*slope {
			st, suspect := s.converge(tempOld, false)

			return st, suspect, nil
		}

		var tmplam float64
		if firstTrial {
			tmplam = -slope / (2.0 * (s.f - fOld - slope))
		} else {
			rhs1 := s.f - fOld - alam*slope
			rhs2 := f2 - fOld - alam2*slope
			a := (rhs1/(alam*alam) - rhs2/(alam2*alam2)) / (alam - alam2)
			bb := (-alam2*rhs1/(alam*alam) + alam*rhs2/(alam2*alam2)) / (alam - alam2)
			if a == 0.0 {
				tmplam = -slope / (2.0 * bb)
			} else {
				disc := bb*bb - 3.0*a*slope
				switch {
				case disc < 0.0:
					tmplam = 0.5 * alam
				case bb <= 0.0:
					tmplam = (-bb + math.Sqrt(disc)) / (3.0 * a)
				default:
					tmplam = -slope / (bb + math.Sqrt(disc))
				}
			}
			if tmplam > 0.5*alam {
				tmplam = 0.5 * alam
			}
		}

		alam2, f2 = alam, s.f
		alam = math.Max(tmplam, 0.1*alam)
		firstTrial = false
	}
}

// converge runs the three-stage convergence chain on the accepted point.
// check marks the small-step entry, where a passing residual test means a
// genuine root and a failing gradient-stationarity test means the iteration
// stalled at a local minimum of the merit.
func (s *solver) converge(tempOld []float64, check bool) (Status, bool) {
	var test float64
	for _, r := range s.fvec[:s.n] {
		if a := math.Abs(r); a > test {
			test = a
		}
	}
	if test < s.o.TolF {
		return Converged, false
	}

	if check {
		den := math.Max(s.f, 0.5*float64(s.n))
		test = 0
		for i := 0; i < s.n; i++ {
			if v := math.Abs(s.g[i]*s.p[i]) / den; v > test {
				test = v
			}
		}

		return Converged, test >= s.o.TolMin
	}

	test = 0
	for _, lvl := range s.active {
		if v := math.Abs(s.temp[lvl]-tempOld[lvl]) / tempOld[lvl]; v > test {
			test = v
		}
	}
	if test < s.o.TolX {
		return Converged, false
	}

	return Continuing, false
}

// hasNaN reports whether any entry is NaN.
func hasNaN(a []float64) bool {
	for _, v := range a {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
