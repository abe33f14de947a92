package lapse

import "errors"

// Sentinel errors returned by table construction and evaluation.
var (
	// ErrEmptyTable indicates a table with no temperature or pressure nodes.
	ErrEmptyTable = errors.New("lapse: table axes must be non-empty")

	// ErrAxisNotSorted indicates a temperature or pressure axis that is not
	// strictly increasing.
	ErrAxisNotSorted = errors.New("lapse: table axes must be strictly increasing")

	// ErrGridShape indicates gradient/cp grids whose dimensions do not match
	// the axes (rows = temperature nodes, columns = pressure nodes).
	ErrGridShape = errors.New("lapse: grid shape must match axis lengths")

	// ErrProfileLength indicates a level profile with fewer than two levels
	// or mismatched temperature/pressure lengths.
	ErrProfileLength = errors.New("lapse: temperature and pressure profiles must have equal length ≥ 2")
)

// Table holds tabulated adiabatic gradients and heat capacities on a
// rectangular (log10 T, log10 P) grid. Axes are strictly increasing; the
// grids are indexed [temperature node][pressure node]. A Table is read-only
// after construction and safe for concurrent use.
type Table struct {
	logT  []float64   // log10 temperature nodes, strictly increasing
	logP  []float64   // log10 pressure nodes, strictly increasing
	grad  [][]float64 // adiabatic gradient dlnT/dlnP at each node
	logCp [][]float64 // log10 heat capacity at each node
}

// Species identifies a gas tracked by the moist-adiabat path.
type Species int

// Tracked species, in the order of the underlying thermochemical fits.
const (
	H2O Species = iota
	CH4
	CO
	NH3
	N2
	PH3
	H2S
	TiO
	VO
	Fe
	FeH
	CrH
	Na
	K
	Rb
	Cs
	CO2

	numSpecies
)

// Composition supplies mole fractions for the moist-adiabat path.
// MoleFraction must return a value in [0,1] for every tracked Species;
// species absent from the mixture return 0.
type Composition interface {
	MoleFraction(sp Species) float64
}

// NewTable builds a Table from in-memory axes and grids.
// logT and logP are the log10 axes; grad and logCp are indexed
// [len(logT)][len(logP)].
//
// Returns ErrEmptyTable, ErrAxisNotSorted or ErrGridShape on invalid input.
func NewTable(logT, logP []float64, grad, logCp [][]float64) (*Table, error) {
	if len(logT) < 2 || len(logP) < 2 {
		return nil, ErrEmptyTable
	}
	if !strictlyIncreasing(logT) || !strictlyIncreasing(logP) {
		return nil, ErrAxisNotSorted
	}
	if len(grad) != len(logT) || len(logCp) != len(logT) {
		return nil, ErrGridShape
	}
	for i := range grad {
		if len(grad[i]) != len(logP) || len(logCp[i]) != len(logP) {
			return nil, ErrGridShape
		}
	}

	return &Table{logT: logT, logP: logP, grad: grad, logCp: logCp}, nil
}

// strictlyIncreasing reports whether a is sorted with no repeated values.
func strictlyIncreasing(a []float64) bool {
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			return false
		}
	}

	return true
}
