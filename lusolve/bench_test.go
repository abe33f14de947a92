package lusolve_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/radeq/lusolve"
	"gonum.org/v1/gonum/mat"
)

// randomSystem builds a diagonally dominant n×n matrix and a matching
// right-hand side.
func randomSystem(r *rand.Rand, n int) (*mat.Dense, []float64) {
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			if i != j {
				v := r.Float64()*2 - 1
				a.Set(i, j, v)
				if v < 0 {
					rowSum -= v
				} else {
					rowSum += v
				}
			}
		}
		a.Set(i, i, rowSum+1.0)
	}

	b := make([]float64, n)
	for i := range b {
		b[i] = r.Float64()*10 - 5
	}

	return a, b
}

func BenchmarkDecomposeSolve(b *testing.B) {
	r := rand.New(rand.NewSource(42))

	for _, n := range []int{10, 25, 50, 91} {
		a0, rhs := randomSystem(r, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := mat.NewDense(n, n, nil)
			x := make([]float64, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				a.Copy(a0)
				copy(x, rhs)
				piv, err := lusolve.Decompose(a, n)
				if err != nil {
					b.Fatal(err)
				}
				lusolve.Solve(a, piv, x, n)
			}
		})
	}
}
