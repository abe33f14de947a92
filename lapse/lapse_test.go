package lapse_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/radeq/lapse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable builds a small synthetic grid with deterministic node values so
// interpolation results can be checked exactly.
func testTable(t *testing.T) *lapse.Table {
	t.Helper()

	logT := []float64{2.0, 2.5, 3.0, 3.5}
	logP := []float64{-2.0, -1.0, 0.0, 1.0}

	grad := make([][]float64, len(logT))
	logCp := make([][]float64, len(logT))
	for i := range logT {
		grad[i] = make([]float64, len(logP))
		logCp[i] = make([]float64, len(logP))
		for j := range logP {
			grad[i][j] = 0.10 + 0.01*float64(i) + 0.001*float64(j)
			logCp[i][j] = 7.0 + 0.1*float64(i) - 0.05*float64(j)
		}
	}

	tbl, err := lapse.NewTable(logT, logP, grad, logCp)
	require.NoError(t, err, "synthetic table must construct")

	return tbl
}

// TestLocate_Bounds verifies the boundary contract: any query at or below the
// first element maps to 0, any query at or above the last maps to len-1.
func TestLocate_Bounds(t *testing.T) {
	arr := []float64{1.0, 2.0, 4.0, 8.0}

	assert.Equal(t, 0, lapse.Locate(arr, -5.0), "query below first element")
	assert.Equal(t, 0, lapse.Locate(arr, 1.0), "query equal to first element")
	assert.Equal(t, 3, lapse.Locate(arr, 8.0), "query equal to last element")
	assert.Equal(t, 3, lapse.Locate(arr, 100.0), "query above last element")
}

// TestLocate_Interior verifies that interior queries return the largest j
// with arr[j] ≤ value < arr[j+1].
func TestLocate_Interior(t *testing.T) {
	arr := []float64{1.0, 2.0, 4.0, 8.0}

	assert.Equal(t, 0, lapse.Locate(arr, 1.5), "1.5 brackets in [1,2)")
	assert.Equal(t, 1, lapse.Locate(arr, 2.0), "exact interior node belongs to its own cell")
	assert.Equal(t, 1, lapse.Locate(arr, 3.999), "just below a node stays in the lower cell")
	assert.Equal(t, 2, lapse.Locate(arr, 4.0), "exact node 4.0")
	assert.Equal(t, 2, lapse.Locate(arr, 7.9), "7.9 brackets in [4,8)")
}

// TestNewTable_Validation exercises every construction sentinel.
func TestNewTable_Validation(t *testing.T) {
	ax := []float64{1, 2, 3}
	grid := [][]float64{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}

	_, err := lapse.NewTable(nil, ax, grid, grid)
	assert.ErrorIs(t, err, lapse.ErrEmptyTable, "nil temperature axis")

	_, err = lapse.NewTable([]float64{3, 2, 1}, ax, grid, grid)
	assert.ErrorIs(t, err, lapse.ErrAxisNotSorted, "decreasing temperature axis")

	_, err = lapse.NewTable([]float64{1, 1, 2}, ax, grid, grid)
	assert.ErrorIs(t, err, lapse.ErrAxisNotSorted, "repeated axis value")

	_, err = lapse.NewTable(ax, ax, grid[:2], grid)
	assert.ErrorIs(t, err, lapse.ErrGridShape, "too few gradient rows")

	_, err = lapse.NewTable(ax, ax, grid, [][]float64{{1, 2}, {1, 2}, {1, 2}})
	assert.ErrorIs(t, err, lapse.ErrGridShape, "short cp row")
}

// TestGradCp_ExactNode verifies that a query at a grid node returns the
// stored node values exactly — the blend factors must collapse to 0/1.
func TestGradCp_ExactNode(t *testing.T) {
	tbl := testTable(t)

	// node (i=1, j=2): logT=2.5, logP=0.0
	grad, cp := tbl.GradCp(math.Pow(10, 2.5), 1.0)

	assert.Equal(t, 0.10+0.01+0.002, grad, "gradient at node (1,2)")
	assert.Equal(t, math.Pow(10, 7.0+0.1-0.10), cp, "cp at node (1,2) is 10^stored")
}

// TestGradCp_NoExtrapolation verifies that queries outside the grid clamp to
// the edge values instead of extrapolating.
func TestGradCp_NoExtrapolation(t *testing.T) {
	tbl := testTable(t)

	gLow, _ := tbl.GradCp(1.0, 1e-2)       // far below both axes
	gCorner, _ := tbl.GradCp(100.0, 1e-2)  // exact low corner
	gHigh, _ := tbl.GradCp(1e6, 1e4)       // far above both axes
	gTop, _ := tbl.GradCp(math.Pow(10, 3.5), 10.0) // exact high corner

	assert.Equal(t, gCorner, gLow, "below-grid query clamps to the low corner")
	assert.Equal(t, gTop, gHigh, "above-grid query clamps to the high corner")
}

// TestGradCp_BilinearMidpoint checks the interpolation weights at an
// interior cell centre: the result must be the mean of the four surrounding
// nodes.
func TestGradCp_BilinearMidpoint(t *testing.T) {
	tbl := testTable(t)

	// centre of the cell between nodes (1,1) and (2,2): logT=2.75, logP=-0.5
	grad, _ := tbl.GradCp(math.Pow(10, 2.75), math.Pow(10, -0.5))

	want := (0.111 + 0.121 + 0.112 + 0.122) / 4.0
	assert.InDelta(t, want, grad, 1e-12, "cell-centre value is the node mean")
}

// TestGradCp_FirstCellSnapsToLowNode pins the first-cell behavior: the
// bracketing index 0 carries a zero blend factor, so any query inside the
// first cell of an axis returns the low node, not an interpolant.
func TestGradCp_FirstCellSnapsToLowNode(t *testing.T) {
	tbl := testTable(t)

	// centre of the cell between nodes (0,0) and (1,1): logT=2.25, logP=-1.5
	grad, cp := tbl.GradCp(math.Pow(10, 2.25), math.Pow(10, -1.5))

	assert.Equal(t, 0.100, grad, "first-cell query snaps to node (0,0)")
	assert.Equal(t, math.Pow(10, 7.0), cp, "cp snaps with the same factors")
}

// TestLayerGradients verifies evaluation at layer means and length checks.
func TestLayerGradients(t *testing.T) {
	tbl := testTable(t)

	temp := []float64{800.0, 600.0, 400.0}
	press := []float64{0.1, 1.0, 10.0}

	grads, cps, err := tbl.LayerGradients(temp, press, nil)
	require.NoError(t, err, "valid profile must evaluate")
	require.Len(t, grads, 2, "nlayer = nlevel-1")
	require.Len(t, cps, 2, "cp per layer")

	// layer 0 evaluates at tbar=700, pbar=sqrt(0.1)
	wantGrad, wantCp := tbl.GradCp(700.0, math.Sqrt(0.1))
	assert.Equal(t, wantGrad, grads[0], "layer 0 uses arithmetic-mean T, geometric-mean P")
	assert.Equal(t, wantCp, cps[0], "layer 0 cp")

	_, _, err = tbl.LayerGradients(temp, press[:2], nil)
	assert.ErrorIs(t, err, lapse.ErrProfileLength, "mismatched lengths must error")

	_, _, err = tbl.LayerGradients(temp[:1], press[:1], nil)
	assert.ErrorIs(t, err, lapse.ErrProfileLength, "single level has no layers")
}
