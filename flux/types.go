package flux

import "errors"

// Sentinel errors returned by engine construction and Compute.
var (
	// ErrNilSolver indicates a nil TwoStream kernel.
	ErrNilSolver = errors.New("flux: two-stream solver must not be nil")

	// ErrNoBins indicates optics without correlated-k bins.
	ErrNoBins = errors.New("flux: optics must contain at least one bin")

	// ErrBinWeights indicates a gauss-weight count that does not match the
	// bin count.
	ErrBinWeights = errors.New("flux: gauss weights must match bin count")

	// ErrBinWidths indicates missing wavenumber bin widths.
	ErrBinWidths = errors.New("flux: wavenumber bin widths must be non-empty")

	// ErrCloudFraction indicates a patchy-cloud fraction outside [0, 1].
	ErrCloudFraction = errors.New("flux: cloud fraction must be in [0, 1]")

	// ErrMissingClear indicates patchy-cloud mode without clear-sky optics,
	// or clear-sky optics with a mismatched bin count.
	ErrMissingClear = errors.New("flux: patchy clouds require matching clear-sky optics")

	// ErrProfileShape indicates temperature/pressure arrays of unequal or
	// insufficient length.
	ErrProfileShape = errors.New("flux: temperature and pressure must have equal length ≥ 2")

	// ErrNoBands indicates a Compute call with both band selectors off.
	ErrNoBands = errors.New("flux: at least one band must be selected")

	// ErrKernelShape indicates a kernel result whose dimensions do not match
	// the profile and bin widths.
	ErrKernelShape = errors.New("flux: kernel streams must be nlevel x nwno")
)

// Bands selects which spectral bands Compute evaluates.
type Bands struct {
	Reflected bool // visible reflected light
	Thermal   bool // thermal emission
}

// Streams carries the up/down fluxes a two-stream kernel produces for one
// correlated-k bin: per level and per layer midpoint, each nlevel × nwno.
type Streams struct {
	Up      [][]float64
	Down    [][]float64
	UpMid   [][]float64
	DownMid [][]float64
}

// BinOptics holds the precomputed optical arrays for one correlated-k gauss
// point, each nlayer × nwno: optical depth, single-scattering albedo and
// asymmetry in delta-scaled form, their unscaled (OG) variants, the
// cumulative depths, and the Raman-uncorrected albedo. The engine passes
// these through to the kernel untouched.
type BinOptics struct {
	Dtau      [][]float64
	Tau       [][]float64 // cumulative, nlevel rows
	W0        [][]float64
	Cosb      [][]float64
	DtauOG    [][]float64
	TauOG     [][]float64
	W0OG      [][]float64
	CosbOG    [][]float64
	W0NoRaman [][]float64
}

// Optics bundles the per-bin optical arrays with their quadrature weights.
type Optics struct {
	Bins         []BinOptics
	GaussWeights []float64
}

// TwoStream is the external radiative-transfer kernel: one reflected-light
// and one thermal-emission solution per correlated-k bin. Implementations
// must be pure — Compute may be called concurrently during Jacobian
// construction.
type TwoStream interface {
	// Reflected solves the visible two-stream problem for one bin.
	Reflected(temp, press []float64, op *BinOptics) (Streams, error)

	// Thermal solves the thermal-emission problem for one bin.
	Thermal(temp, press []float64, op *BinOptics) (Streams, error)
}

// Config assembles an Engine.
type Config struct {
	// Optics holds the cloudy-sky per-bin arrays and quadrature weights.
	Optics Optics

	// BinWidths are the thermal wavenumber interval widths used to
	// integrate per-bin flux into broadband IR flux.
	BinWidths []float64

	// CloudFraction enables patchy-cloud blending when positive: the final
	// streams are (1-CloudFraction)·cloudy + CloudFraction·clear.
	CloudFraction float64

	// Clear holds the clear-sky optics; required when CloudFraction > 0.
	Clear *Optics
}

// Bundle is the ephemeral result of one Compute call: net fluxes per level
// and per layer midpoint for each requested band, plus the per-bin up/down
// thermal arrays. Entries for unselected bands remain zero.
type Bundle struct {
	NetVis      []float64   // net visible flux per level
	NetVisLayer []float64   // net visible flux per layer midpoint
	NetIR       []float64   // broadband net thermal flux per level
	NetIRLayer  []float64   // broadband net thermal flux per layer midpoint
	UpIR        [][]float64 // upward thermal flux per level × bin, width-weighted
	DownIR      [][]float64 // downward thermal flux per level × bin, width-weighted
}
