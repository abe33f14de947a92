package lapse_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/radeq/lapse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mix is a fixed-map Composition for tests.
type mix map[lapse.Species]float64

func (m mix) MoleFraction(sp lapse.Species) float64 { return m[sp] }

// TestMoistGradCp_EmptyComposition verifies that with no tracked species the
// moist path degenerates to the dry table adiabat: zero mole fractions leave
// only the non-ideal component and no latent-heat correction.
func TestMoistGradCp_EmptyComposition(t *testing.T) {
	tbl := testTable(t)

	dryGrad, dryCp := tbl.GradCp(300.0, 1.0)
	moistGrad, moistCp := tbl.MoistGradCp(300.0, 1.0, mix{})

	assert.InDelta(t, dryGrad, moistGrad, 1e-12, "empty mixture must reproduce the dry gradient")
	assert.Equal(t, dryCp, moistCp, "cp passes through from the dry table")
}

// TestMoistGradCp_CondensationLowersGradient verifies the qualitative moist
// effect: a condensing water fraction below the critical temperature releases
// latent heat and must flatten the lapse rate relative to dry.
func TestMoistGradCp_CondensationLowersGradient(t *testing.T) {
	tbl := testTable(t)

	dryGrad, _ := tbl.GradCp(280.0, 1.0)
	moistGrad, _ := tbl.MoistGradCp(280.0, 1.0, mix{lapse.H2O: 0.02})

	require.False(t, math.IsNaN(moistGrad), "moist gradient must be finite")
	assert.Less(t, moistGrad, dryGrad, "condensing H2O must reduce the gradient")
	assert.Greater(t, moistGrad, 0.0, "gradient stays positive")
}

// TestMoistGradCp_AboveCritical verifies that hot mixtures carry no latent
// term for species above their critical temperature: with only CO (never
// condensing) in the mixture the correction reduces to the cp re-weighting.
func TestMoistGradCp_AboveCritical(t *testing.T) {
	tbl := testTable(t)

	grad, _ := tbl.MoistGradCp(900.0, 1.0, mix{lapse.CO: 0.001})

	require.False(t, math.IsNaN(grad), "gradient must be finite")
	assert.Greater(t, grad, 0.0, "gradient stays positive")

	// with no condensibles present the latent sums vanish, so the result is
	// purely the weighted cp combination — close to dry for a trace amount.
	dryGrad, _ := tbl.GradCp(900.0, 1.0)
	assert.InDelta(t, dryGrad, grad, 0.05*dryGrad, "trace non-condensible stays near dry")
}
