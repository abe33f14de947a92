package zones

import (
	"errors"
	"fmt"
)

// MaxZones caps the number of convective zones a Map can hold.
const MaxZones = 6

// Sentinel errors returned by Map construction and mutation.
var (
	// ErrNoZones indicates a map with no convective zones.
	ErrNoZones = errors.New("zones: map must contain at least one zone")

	// ErrTooManyZones indicates more than MaxZones triples.
	ErrTooManyZones = errors.New("zones: zone count exceeds capacity")

	// ErrZoneIndex indicates a zone index outside [0, Len).
	ErrZoneIndex = errors.New("zones: zone index out of range")

	// ErrZoneOrder indicates a triple whose markers are not non-decreasing.
	ErrZoneOrder = errors.New("zones: zone markers must be non-decreasing")

	// ErrZoneRange indicates a marker outside the level range, or a mutation
	// that would push one outside.
	ErrZoneRange = errors.New("zones: zone marker out of level range")

	// ErrZoneOverlap indicates consecutive zones whose regions overlap.
	ErrZoneOverlap = errors.New("zones: consecutive zones overlap")
)

// Zone is one convective zone, described by three layer markers.
// Markers index layers (0..nlevel-2); the convective temperature integration
// reaches level ConvBot+1.
type Zone struct {
	RadTop  int // top layer of the radiative region above the zone
	ConvTop int // top layer of the convective zone (last solved layer)
	ConvBot int // bottom layer of the convective zone
}

// Map is a fixed-capacity, ordered set of convective zones over an
// nlevel-level atmosphere. Mutate it only through GrowUp and GrowDown.
type Map struct {
	nlevel int
	zones  []Zone
	bottom int // sentinel: radiative-top marker below the last zone
}

// NewMap builds and validates a Map. The trailing sentinel marker (the
// radiative top below the deepest zone) is initialized to the last zone's
// ConvBot+1 and follows it through GrowDown.
func NewMap(nlevel int, zs ...Zone) (*Map, error) {
	if len(zs) == 0 {
		return nil, ErrNoZones
	}
	if len(zs) > MaxZones {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyZones, len(zs), MaxZones)
	}

	m := &Map{
		nlevel: nlevel,
		zones:  append([]Zone(nil), zs...),
		bottom: zs[len(zs)-1].ConvBot + 1,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Len returns the number of convective zones.
func (m *Map) Len() int { return len(m.zones) }

// NLevel returns the level count the map was built for.
func (m *Map) NLevel() int { return m.nlevel }

// Zone returns zone i.
func (m *Map) Zone(i int) (Zone, error) {
	if i < 0 || i >= len(m.zones) {
		return Zone{}, fmt.Errorf("%w: %d of %d", ErrZoneIndex, i, len(m.zones))
	}

	return m.zones[i], nil
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	return &Map{
		nlevel: m.nlevel,
		zones:  append([]Zone(nil), m.zones...),
		bottom: m.bottom,
	}
}

// Validate checks every invariant: markers non-decreasing within a triple,
// all markers inside [0, nlevel-1], and each zone's radiative region starting
// strictly below the convective bottom of the zone above.
func (m *Map) Validate() error {
	maxMarker := m.nlevel - 2 // markers index layers
	for i, z := range m.zones {
		if z.RadTop > z.ConvTop || z.ConvTop > z.ConvBot {
			return fmt.Errorf("%w: zone %d (%d, %d, %d)", ErrZoneOrder, i, z.RadTop, z.ConvTop, z.ConvBot)
		}
		if z.RadTop < 0 || z.ConvBot > maxMarker {
			return fmt.Errorf("%w: zone %d (%d, %d, %d), nlevel=%d", ErrZoneRange, i, z.RadTop, z.ConvTop, z.ConvBot, m.nlevel)
		}
		if i > 0 && z.RadTop != m.zones[i-1].ConvBot+1 {
			return fmt.Errorf("%w: zone %d radiative top %d, zone %d convective bottom %d",
				ErrZoneOverlap, i, z.RadTop, i-1, m.zones[i-1].ConvBot)
		}
	}

	return nil
}

// GrowUp moves zone i's convective-top marker upward by n layers, shrinking
// the radiative region above it. A negative n undoes a previous GrowUp.
func (m *Map) GrowUp(i, n int) error {
	if i < 0 || i >= len(m.zones) {
		return fmt.Errorf("%w: %d of %d", ErrZoneIndex, i, len(m.zones))
	}

	z := m.zones[i]
	z.ConvTop -= n
	if z.ConvTop < z.RadTop || z.ConvTop > z.ConvBot {
		return fmt.Errorf("%w: zone %d convective top %d outside [%d, %d]",
			ErrZoneRange, i, z.ConvTop, z.RadTop, z.ConvBot)
	}
	m.zones[i] = z

	return nil
}

// GrowDown moves zone i's convective-bottom marker and the radiative-top
// marker of the zone below downward by n layers, extending the convective
// region. A negative n undoes a previous GrowDown.
func (m *Map) GrowDown(i, n int) error {
	if i < 0 || i >= len(m.zones) {
		return fmt.Errorf("%w: %d of %d", ErrZoneIndex, i, len(m.zones))
	}

	z := m.zones[i]
	z.ConvBot += n
	if z.ConvBot < z.ConvTop || z.ConvBot > m.nlevel-2 {
		return fmt.Errorf("%w: zone %d convective bottom %d outside [%d, %d]",
			ErrZoneRange, i, z.ConvBot, z.ConvTop, m.nlevel-2)
	}

	if i == len(m.zones)-1 {
		m.zones[i] = z
		m.bottom += n

		return nil
	}

	next := m.zones[i+1]
	next.RadTop += n
	if next.RadTop > next.ConvTop {
		return fmt.Errorf("%w: zone %d radiative top %d above its convective top %d",
			ErrZoneRange, i+1, next.RadTop, next.ConvTop)
	}
	m.zones[i] = z
	m.zones[i+1] = next

	return nil
}

// RadiativeLevels enumerates, in order, the level indices the solver balances
// radiatively: the top zone contributes RadTop..ConvTop, every deeper zone
// RadTop+1..ConvTop (its RadTop level is the convective bottom of the zone
// above). This is the compact active index set shared by residual vectors,
// Jacobian rows/columns and Newton steps.
func (m *Map) RadiativeLevels() []int {
	var levels []int
	for i, z := range m.zones {
		start := z.RadTop
		if i > 0 {
			start = z.RadTop + 1
		}
		for j := start; j <= z.ConvTop; j++ {
			levels = append(levels, j)
		}
	}

	return levels
}

// SatZero clamps a zone-relative offset at zero. Offsets derived from the
// top zone's RadTop-1 go negative when the zone starts at the top of the
// atmosphere; every index computation that consumes such an offset must
// saturate instead of wrapping.
func SatZero(i int) int {
	if i < 0 {
		return 0
	}

	return i
}
