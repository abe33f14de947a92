package lusolve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by Decompose.
var (
	// ErrSingularMatrix indicates an active row whose entries are all zero:
	// the submatrix cannot be decomposed.
	ErrSingularMatrix = errors.New("lusolve: matrix is singular")

	// ErrActiveDimension indicates an active dimension that is non-positive
	// or exceeds the backing storage.
	ErrActiveDimension = errors.New("lusolve: active dimension out of range")
)

// tiny replaces an exactly-zero pivot after elimination.
const tiny = 1e-20

// Decompose factors the leading n×n active submatrix of a in place into its
// LU form (Crout's method with implicit row scaling and partial pivoting),
// returning the pivot permutation. Storage beyond the active submatrix is
// left untouched.
//
// Returns ErrActiveDimension if n is non-positive or exceeds the storage,
// and ErrSingularMatrix (wrapped with the offending row) if an active row
// has zero maximum magnitude.
func Decompose(a *mat.Dense, n int) ([]int, error) {
	rows, cols := a.Dims()
	if n < 1 || n > rows || n > cols {
		return nil, fmt.Errorf("%w: n=%d, storage %dx%d", ErrActiveDimension, n, rows, cols)
	}

	// implicit scaling: 1/max|row| per active row
	vv := make([]float64, n)
	for i := 0; i < n; i++ {
		amax := 0.0
		for j := 0; j < n; j++ {
			if v := math.Abs(a.At(i, j)); v > amax {
				amax = v
			}
		}
		if amax == 0.0 {
			return nil, fmt.Errorf("%w: row %d of active %dx%d submatrix is zero", ErrSingularMatrix, i, n, n)
		}
		vv[i] = 1.0 / amax
	}

	piv := make([]int, n)
	for j := 0; j < n; j++ {
		for i := 0; i < j; i++ {
			sum := a.At(i, j)
			for k := 0; k < i; k++ {
				sum -= a.At(i, k) * a.At(k, j)
			}
			a.Set(i, j, sum)
		}

		// eliminate below the diagonal, tracking the scaled pivot candidate
		imax := j
		amax := 0.0
		for i := j; i < n; i++ {
			sum := a.At(i, j)
			for k := 0; k < j; k++ {
				sum -= a.At(i, k) * a.At(k, j)
			}
			a.Set(i, j, sum)
			if d := vv[i] * math.Abs(sum); d >= amax {
				imax = i
				amax = d
			}
		}

		if j != imax {
			for k := 0; k < n; k++ {
				tmp := a.At(imax, k)
				a.Set(imax, k, a.At(j, k))
				a.Set(j, k, tmp)
			}
			vv[imax] = vv[j]
		}
		piv[j] = imax

		if a.At(j, j) == 0.0 {
			a.Set(j, j, tiny)
		}
		if j != n-1 {
			inv := 1.0 / a.At(j, j)
			for i := j + 1; i < n; i++ {
				a.Set(i, j, a.At(i, j)*inv)
			}
		}
	}

	return piv, nil
}

// Solve computes x for A·x = b given the factored active submatrix and pivot
// permutation from Decompose, overwriting b[:n] with the solution: permuted
// forward substitution (skipping leading zeros of b) followed by back
// substitution.
func Solve(a *mat.Dense, piv []int, b []float64, n int) {
	ii := -1
	for i := 0; i < n; i++ {
		ll := piv[i]
		sum := b[ll]
		b[ll] = b[i]
		if ii != -1 {
			for j := ii; j < i; j++ {
				sum -= a.At(i, j) * b[j]
			}
		} else if sum != 0.0 {
			ii = i
		}
		b[i] = sum
	}

	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a.At(i, j) * b[j]
		}
		b[i] = sum / a.At(i, i)
	}
}
