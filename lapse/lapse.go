package lapse

import "math"

// Locate returns the bracketing index for value in a monotonically
// increasing array, found by bisection:
//
//   - 0      for value ≤ arr[0]
//   - len-1  for value ≥ arr[len-1]
//   - else the largest j with arr[j] ≤ value < arr[j+1]
//
// Complexity: O(log n).
func Locate(arr []float64, value float64) int {
	n := len(arr)

	jl, ju := 0, n
	for ju-jl > 1 {
		jm := (ju + jl) / 2
		if value >= arr[jm] {
			jl = jm
		} else {
			ju = jm
		}
	}

	if value <= arr[0] {
		jl = 0
	} else if value >= arr[n-1] {
		jl = n - 1
	}

	return jl
}

// blend returns the bracketing cell index and interpolation factor for a
// log-space query on one table axis. Queries at or beyond the axis edges
// clamp the factor to 0 or 1 — the table is never extrapolated. Note the
// bracketing index 0 covers the whole first cell, so queries there snap to
// the low node: interpolation is piecewise constant below the second node.
func blend(axis []float64, q float64) (int, float64) {
	pos := Locate(axis, q)
	last := len(axis) - 1

	switch {
	case pos == 0:
		return 0, 0.0
	case pos == last:
		return last - 1, 1.0
	default:
		return pos, (q - axis[pos]) / (axis[pos+1] - axis[pos])
	}
}

// GradCp evaluates the dry adiabatic gradient and heat capacity at
// temperature T and pressure P by bilinear interpolation on the table.
// Blend factors collapse to exactly 0 or 1 at grid nodes and edges, so a
// query at a node returns the stored node values.
//
// The heat capacity is stored as log10(cp); the returned cp is 10^interp.
func (t *Table) GradCp(T, P float64) (grad, cp float64) {
	it, ft := blend(t.logT, math.Log10(T))
	ip, fp := blend(t.logP, math.Log10(P))

	g1 := t.grad[it][ip]
	g2 := t.grad[it+1][ip]
	g3 := t.grad[it+1][ip+1]
	g4 := t.grad[it][ip+1]

	c1 := t.logCp[it][ip]
	c2 := t.logCp[it+1][ip]
	c3 := t.logCp[it+1][ip+1]
	c4 := t.logCp[it][ip+1]

	grad = (1-ft)*(1-fp)*g1 + ft*(1-fp)*g2 + ft*fp*g3 + (1-ft)*fp*g4
	cp = math.Pow(10, (1-ft)*(1-fp)*c1+ft*(1-fp)*c2+ft*fp*c3+(1-ft)*fp*c4)

	return grad, cp
}

// LayerGradients evaluates the adiabatic gradient and heat capacity for every
// layer of a level profile, at the arithmetic-mean temperature and
// geometric-mean pressure of the layer's bounding levels. A nil comp selects
// the dry table adiabat; otherwise the moist adiabat is used.
//
// Returns ErrProfileLength if the profiles are shorter than two levels or of
// unequal length.
func (t *Table) LayerGradients(temp, press []float64, comp Composition) ([]float64, []float64, error) {
	if len(temp) != len(press) || len(temp) < 2 {
		return nil, nil, ErrProfileLength
	}

	nlayer := len(temp) - 1
	grads := make([]float64, nlayer)
	cps := make([]float64, nlayer)

	for j := 0; j < nlayer; j++ {
		tbar := 0.5 * (temp[j] + temp[j+1])
		pbar := math.Sqrt(press[j] * press[j+1])
		if comp == nil {
			grads[j], cps[j] = t.GradCp(tbar, pbar)
		} else {
			grads[j], cps[j] = t.MoistGradCp(tbar, pbar, comp)
		}
	}

	return grads, cps, nil
}
