package zones_test

import (
	"testing"

	"github.com/katalvlaran/radeq/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoZoneMap builds a 20-level map with two zones separated by a radiative
// gap: layers 0..7 radiative, 8..11 convective, 12..14 radiative (below the
// shared boundary layer 12), 15..18 convective.
func twoZoneMap(t *testing.T) *zones.Map {
	t.Helper()

	m, err := zones.NewMap(20,
		zones.Zone{RadTop: 0, ConvTop: 7, ConvBot: 11},
		zones.Zone{RadTop: 12, ConvTop: 14, ConvBot: 18},
	)
	require.NoError(t, err, "two-zone map must validate")

	return m
}

// TestNewMap_Validation exercises the construction sentinels.
func TestNewMap_Validation(t *testing.T) {
	_, err := zones.NewMap(20)
	assert.ErrorIs(t, err, zones.ErrNoZones, "empty map")

	_, err = zones.NewMap(20, zones.Zone{RadTop: 5, ConvTop: 3, ConvBot: 8})
	assert.ErrorIs(t, err, zones.ErrZoneOrder, "decreasing markers")

	_, err = zones.NewMap(20, zones.Zone{RadTop: 0, ConvTop: 7, ConvBot: 19})
	assert.ErrorIs(t, err, zones.ErrZoneRange, "marker beyond the last layer")

	_, err = zones.NewMap(20,
		zones.Zone{RadTop: 0, ConvTop: 7, ConvBot: 11},
		zones.Zone{RadTop: 10, ConvTop: 14, ConvBot: 18},
	)
	assert.ErrorIs(t, err, zones.ErrZoneOverlap, "second zone starts inside the first")

	many := make([]zones.Zone, zones.MaxZones+1)
	for i := range many {
		many[i] = zones.Zone{RadTop: 3 * i, ConvTop: 3 * i, ConvBot: 3 * i}
	}
	for i := 1; i < len(many); i++ {
		many[i].RadTop = many[i-1].ConvBot + 1
		many[i].ConvTop = many[i].RadTop
		many[i].ConvBot = many[i].RadTop
	}
	_, err = zones.NewMap(40, many...)
	assert.ErrorIs(t, err, zones.ErrTooManyZones, "capacity exceeded")
}

// TestGrowUp verifies the convective-top mutation and its bounds.
func TestGrowUp(t *testing.T) {
	m := twoZoneMap(t)

	require.NoError(t, m.GrowUp(0, 2), "valid grow up")
	z, err := m.Zone(0)
	require.NoError(t, err)
	assert.Equal(t, 5, z.ConvTop, "convective top moved up by 2")
	assert.Equal(t, 11, z.ConvBot, "convective bottom untouched")

	assert.ErrorIs(t, m.GrowUp(0, 10), zones.ErrZoneRange, "cannot grow past the radiative top")
	assert.ErrorIs(t, m.GrowUp(5, 1), zones.ErrZoneIndex, "unknown zone")
}

// TestGrowDown verifies the paired bottom/next-top mutation.
func TestGrowDown(t *testing.T) {
	m := twoZoneMap(t)

	require.NoError(t, m.GrowDown(0, 2), "valid grow down")

	z0, err := m.Zone(0)
	require.NoError(t, err)
	z1, err := m.Zone(1)
	require.NoError(t, err)
	assert.Equal(t, 13, z0.ConvBot, "zone 0 bottom moved down by 2")
	assert.Equal(t, 14, z1.RadTop, "zone 1 radiative top follows")
	assert.NoError(t, m.Validate(), "map stays consistent after GrowDown")

	assert.ErrorIs(t, m.GrowDown(1, 5), zones.ErrZoneRange, "cannot grow past the bottom layer")
	assert.ErrorIs(t, m.GrowDown(0, 3), zones.ErrZoneRange, "cannot push zone 1's top past its convective top")
}

// TestGrow_Inverse verifies that GrowDown and GrowUp each undo with the
// negated argument, restoring the map exactly for any in-range n. On this
// fixture GrowDown(0, n) is valid only up to n=2: zone 1's radiative top
// (12) may not pass its convective top (14).
func TestGrow_Inverse(t *testing.T) {
	for _, n := range []int{1, 2} {
		m := twoZoneMap(t)
		want := m.Clone()

		require.NoError(t, m.GrowDown(0, n), "grow down by %d", n)
		require.NoError(t, m.GrowDown(0, -n), "undo grow down by %d", n)
		assert.Equal(t, want, m, "GrowDown round trip n=%d", n)
	}

	for _, n := range []int{1, 2, 3} {
		m := twoZoneMap(t)
		want := m.Clone()

		require.NoError(t, m.GrowUp(0, n), "grow up by %d", n)
		require.NoError(t, m.GrowUp(0, -n), "undo grow up by %d", n)
		assert.Equal(t, want, m, "GrowUp round trip n=%d", n)
	}
}

// TestRadiativeLevels verifies the compact active enumeration: the top zone
// includes its RadTop level, deeper zones start one below theirs.
func TestRadiativeLevels(t *testing.T) {
	m := twoZoneMap(t)

	got := m.RadiativeLevels()
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 13, 14}
	assert.Equal(t, want, got, "zone 0 levels 0..7, zone 1 levels 13..14")
}

// TestSatZero verifies the saturating index guard.
func TestSatZero(t *testing.T) {
	assert.Equal(t, 0, zones.SatZero(-1), "negative offsets clamp to zero")
	assert.Equal(t, 0, zones.SatZero(0), "zero passes through")
	assert.Equal(t, 7, zones.SatZero(7), "positive offsets pass through")
}
