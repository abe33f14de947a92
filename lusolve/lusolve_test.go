package lusolve_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/radeq/lusolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// solveSystem factors and solves A·x = b, returning x.
func solveSystem(t *testing.T, a *mat.Dense, b []float64, n int) []float64 {
	t.Helper()

	piv, err := lusolve.Decompose(a, n)
	require.NoError(t, err, "well-conditioned matrix must decompose")

	x := make([]float64, len(b))
	copy(x, b)
	lusolve.Solve(a, piv, x, n)

	return x
}

// TestDecomposeSolve_Known checks a hand-computed 3x3 system.
func TestDecomposeSolve_Known(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 1, 1,
		1, 3, 2,
		1, 0, 0,
	})
	// with x = (1, 2, 3): b = A·x
	b := []float64{7, 13, 1}

	x := solveSystem(t, a, b, 3)

	assert.InDelta(t, 1.0, x[0], 1e-12, "x[0]")
	assert.InDelta(t, 2.0, x[1], 1e-12, "x[1]")
	assert.InDelta(t, 3.0, x[2], 1e-12, "x[2]")
}

// TestDecomposeSolve_Random verifies recovery of random right-hand sides for
// diagonally dominant (hence well-conditioned) systems up to size 50.
func TestDecomposeSolve_Random(t *testing.T) {
	r := rand.New(rand.NewSource(7)) // deterministic seed for reproducibility

	for _, n := range []int{1, 2, 5, 10, 25, 50} {
		a := mat.NewDense(n, n, nil)
		want := make([]float64, n)
		for i := 0; i < n; i++ {
			want[i] = r.Float64()*10 - 5
			rowSum := 0.0
			for j := 0; j < n; j++ {
				if i != j {
					v := r.Float64()*2 - 1
					a.Set(i, j, v)
					rowSum += math.Abs(v)
				}
			}
			a.Set(i, i, rowSum+1.0) // strict diagonal dominance
		}

		// b = A·want
		b := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				b[i] += a.At(i, j) * want[j]
			}
		}

		x := solveSystem(t, a, b, n)
		for i := range want {
			rel := math.Abs(x[i]-want[i]) / math.Max(math.Abs(want[i]), 1.0)
			assert.LessOrEqual(t, rel, 1e-9, "n=%d component %d relative error", n, i)
		}
	}
}

// TestDecompose_ActiveSubmatrix verifies that only the leading n×n block is
// factored: storage outside the active submatrix must be untouched.
func TestDecompose_ActiveSubmatrix(t *testing.T) {
	a := mat.NewDense(4, 4, []float64{
		3, 1, 99, 99,
		1, 2, 99, 99,
		99, 99, 99, 99,
		99, 99, 99, 99,
	})
	b := []float64{5, 5, 0, 0} // x = (1, 2) for the 2x2 block

	x := solveSystem(t, a, b, 2)

	assert.InDelta(t, 1.0, x[0], 1e-12, "active solution x[0]")
	assert.InDelta(t, 2.0, x[1], 1e-12, "active solution x[1]")
	assert.Equal(t, 99.0, a.At(0, 2), "storage beyond active columns untouched")
	assert.Equal(t, 99.0, a.At(2, 0), "storage beyond active rows untouched")
}

// TestDecompose_Singular verifies the all-zero-row sentinel.
func TestDecompose_Singular(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		0, 0, 0,
		4, 5, 6,
	})

	_, err := lusolve.Decompose(a, 3)
	assert.ErrorIs(t, err, lusolve.ErrSingularMatrix, "zero row must raise the singular sentinel")
}

// TestDecompose_BadDimension verifies the active-dimension guard.
func TestDecompose_BadDimension(t *testing.T) {
	a := mat.NewDense(2, 2, nil)

	_, err := lusolve.Decompose(a, 0)
	assert.ErrorIs(t, err, lusolve.ErrActiveDimension, "n=0 is out of range")

	_, err = lusolve.Decompose(a, 3)
	assert.ErrorIs(t, err, lusolve.ErrActiveDimension, "n beyond storage is out of range")
}
