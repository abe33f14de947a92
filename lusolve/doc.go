// Package lusolve provides a dense LU decomposition with row-scaled partial
// pivoting and the matching substitution pass, operating on the leading n×n
// active submatrix of a (possibly larger) gonum mat.Dense.
//
// 🚀 Why a hand-rolled LU?
//
//	The Newton driver allocates its Jacobian once at full level count but
//	solves only over the radiative levels of the current iteration — an
//	active dimension that changes as convective zones grow and shrink.
//	Decompose/Solve take that dimension explicitly, so the caller never
//	reslices or reallocates the backing storage between iterations.
//
// Algorithm (Crout with implicit scaling):
//
//  1. Scale each active row by 1/max|row|; an all-zero row is singular.
//  2. For each column, eliminate above and below the diagonal, choosing the
//     pivot row by scaled magnitude and swapping in place.
//  3. An exactly-zero pivot after elimination is patched to 1e-20 so nearly
//     singular systems still produce a (poor) solution, as in the reference
//     scheme.
//  4. Solve runs the permuted forward substitution with the leading-zero
//     skip, then back substitution, overwriting b[:n].
//
// Complexity: O(n³) decompose, O(n²) solve. Errors: ErrSingularMatrix,
// ErrActiveDimension.
package lusolve
