package lapse

import "math"

// rgas is the universal gas constant in erg/K/mol.
const rgas = 8.314e7

// molarMass holds mean molecular weights (g/mol) for the tracked species.
var molarMass = [numSpecies]float64{
	H2O: 18.01528,
	CH4: 16.04276,
	CO:  28.0104,
	NH3: 17.03056,
	N2:  28.0134,
	PH3: 33.997582,
	H2S: 34.0809,
	TiO: 63.8794,
	VO:  66.9409,
	Fe:  55.84,
	FeH: 56.85494,
	CrH: 53.00404,
	Na:  22.989770,
	K:   39.0983,
	Rb:  85.4678,
	Cs:  132.90545,
	CO2: 44.0,
}

// condensible carries the phase-change data for a species allowed to condense.
type condensible struct {
	sp    Species
	tCrit float64 // critical temperature, K
	tFr   float64 // freezing temperature, K
	hFus  float64 // heat of fusion, erg/mol
}

// condensibles lists the four species the moist adiabat tracks.
var condensibles = [4]condensible{
	{H2O, 647.0, 273.0, 6.00e10},
	{CH4, 191.0, 90.0, 9.46e9},
	{NH3, 406.0, 195.0, 5.65e10},
	{Fe, 4000.0, 1150.0, 1.4e11},
}

// MoistGradCp evaluates the moist adiabatic gradient at temperature T and
// pressure P for the given composition, following Robinson's moist-adiabat
// formulation: latent-heat terms for each condensing species are folded into
// the dry (table) gradient, weighting ideal-gas and non-ideal heat capacities
// by the condensible mole fraction.
//
// Experimental: the moist path has not been benchmarked against observed
// profiles; prefer the dry GradCp unless condensation matters.
//
// The returned cp is the dry table value, as the latent-heat correction
// applies to the gradient only.
func (t *Table) MoistGradCp(T, P float64, comp Composition) (grad, cp float64) {
	// latent heat (vaporization + fusion where applicable) per condensible
	var dH [len(condensibles)]float64
	for i, c := range condensibles {
		if T < c.tCrit {
			dH[i] += heatOfVaporization(c.sp, T)
		}
		if T < c.tFr {
			dH[i] += c.hFus
		}
	}

	// condensible partial pressures and H/(R·T) ratios
	var pc, a [len(condensibles)]float64
	for i, c := range condensibles {
		pc[i] = comp.MoleFraction(c.sp) * P
		a[i] = dH[i] / (rgas * T)
	}

	// summed molar heat capacity for the ideal-gas mixture, erg/K/mol
	var cpIdeal, frac float64
	for sp := Species(0); sp < numSpecies; sp++ {
		x := comp.MoleFraction(sp)
		frac += x
		cpIdeal += x * heatCapacity(sp, T) * molarMass[sp]
	}

	// non-ideal component from the tabulated dry adiabat
	gradDry, cpDry := t.GradCp(T, P)
	cpNonIdeal := rgas / gradDry

	// mole-fraction-weighted combination of non-ideal and ideal components
	gradBase := 1.0 / ((1.0-frac)*cpNonIdeal/rgas + frac*cpIdeal/rgas)

	// partial-pressure-weighted latent-heat correction
	numer := 1.0
	denom := 1.0 / gradBase
	for i := range condensibles {
		numer += a[i] * pc[i] / P
		denom += a[i] * a[i] * pc[i] / P
	}

	return numer / denom, cpDry
}

// heatOfVaporization returns the latent heat of vaporization in erg/mol for a
// condensible species at temperature T, zero above the critical temperature.
func heatOfVaporization(sp Species, T float64) float64 {
	var hvap float64 // kJ/mol

	switch sp {
	case H2O:
		if T < 647.0 {
			tr := T / 647.0
			hvap = 51.67 * math.Exp(0.199*tr) * math.Pow(1.0-tr, 0.410)
		}
	case CH4:
		if T < 191.0 {
			tr := T / 191.0
			hvap = 10.11 * math.Exp(0.22*tr) * math.Pow(1.0-tr, 0.388)
		}
	case NH3:
		if T < 406.0 {
			tc := T - 273.0
			hvap = (137.91*math.Sqrt(133.0-tc) - 2.466*(133.0-tc)) / 1e3 * molarMass[NH3]
		}
	case Fe:
		hvap = 3.50e2 // temperature-independent
	}

	return hvap * 1e10 // kJ/mol → erg/mol
}

// shomate holds NIST-style polynomial heat-capacity fits over three
// temperature regimes: [0] 100–1000 K, [1] 1000–2500 K, [2] above 2500 K.
type shomate struct {
	a, b, c, d, e [3]float64
	defaultCp     float64 // J/K/mol, used below 100 K
}

var cpFits = [numSpecies]shomate{
	H2O: {
		a:         [3]float64{33.7476, 22.1440, 43.2009},
		b:         [3]float64{-6.85376, 24.6949, 7.91703},
		c:         [3]float64{24.6006, -6.23914, -1.35732},
		d:         [3]float64{-10.2578, 0.576813, 0.0883558},
		e:         [3]float64{0.000170650, -0.0143783, -12.3810},
		defaultCp: 33.299,
	},
	CH4: {
		a:         [3]float64{30.1333, 33.3642, 107.517},
		b:         [3]float64{-10.7805, 62.9633, -0.420051},
		c:         [3]float64{116.987, -20.9146, 0.158105},
		d:         [3]float64{-64.8550, 2.54256, -0.0135050},
		e:         [3]float64{0.0315890, -6.26634, -53.2270},
		defaultCp: 33.258,
	},
	CO: {
		a:         [3]float64{30.7036, 34.2259, 35.3293},
		b:         [3]float64{-11.7368, 1.51655, 1.14525},
		c:         [3]float64{25.8658, 0.0492481, -0.170423},
		d:         [3]float64{-11.6476, -0.0690167, 0.0111323},
		e:         [3]float64{-0.00675277, -2.61424, -2.85798},
		defaultCp: 29.104,
	},
	NH3: {
		a:         [3]float64{28.6905, 48.0925, 89.3168},
		b:         [3]float64{14.9648, 16.6892, -0.0283260},
		c:         [3]float64{32.2849, -0.765783, -0.403009},
		d:         [3]float64{-19.5766, -0.465621, 0.0366428},
		e:         [3]float64{0.0281968, -7.37491, -68.5295},
		defaultCp: 33.284,
	},
	N2: {
		a:         [3]float64{30.7036, 34.2259, 35.3293},
		b:         [3]float64{-11.7368, 1.51655, 1.14525},
		c:         [3]float64{25.8658, 0.0492481, -0.170423},
		d:         [3]float64{-11.6476, -0.0690167, 0.0111323},
		e:         [3]float64{-0.00675277, -2.61424, -2.85798},
		defaultCp: 29.104,
	},
	PH3: {
		a:         [3]float64{24.1623, 75.4246, 82.3854},
		b:         [3]float64{35.7131, -0.467915, 0.229399},
		c:         [3]float64{28.4716, 2.70503, -0.0280155},
		d:         [3]float64{-24.2205, -0.650872, 0.00135605},
		e:         [3]float64{0.0530053, -13.0455, -24.2573},
		defaultCp: 33.259,
	},
	H2S: {
		a:         [3]float64{32.3729, 45.0479, 59.8489},
		b:         [3]float64{-1.43579, 7.28547, -0.380368},
		c:         [3]float64{29.0118, -0.645552, 0.218138},
		d:         [3]float64{-14.1925, -0.109566, -0.0148742},
		e:         [3]float64{0.00759539, -6.02580, -21.7958},
		defaultCp: 33.259,
	},
	TiO: {
		a:         [3]float64{24.6205, 42.5795, 25.6986},
		b:         [3]float64{30.8607, -3.86291, 2.45240},
		c:         [3]float64{-23.2493, 1.15148, 0.770717},
		d:         [3]float64{5.39026, -0.0315822, -0.0946717},
		e:         [3]float64{0.0642488, -2.14344, 26.1268},
		defaultCp: 33.880,
	},
	VO: {
		a:         [3]float64{23.6324, 40.2277, 31.0958},
		b:         [3]float64{28.8676, -2.68241, 0.0444865},
		c:         [3]float64{-21.5825, 0.855477, 1.06932},
		d:         [3]float64{5.35779, -0.00729363, -0.106395},
		e:         [3]float64{0.0281114, -2.10348, 13.7865},
		defaultCp: 29.106,
	},
	Fe: {
		a:         [3]float64{22.5120, 29.3785, 31.0353},
		b:         [3]float64{23.6042, -12.7912, -3.09778},
		c:         [3]float64{-49.5765, 6.80824, 0.766662},
		d:         [3]float64{26.1116, -0.979241, 0.00158800},
		e:         [3]float64{-0.0305055, 0.0621550, -22.0154},
		defaultCp: 21.387,
	},
	FeH: {
		a:         [3]float64{17.0970, 43.7692, 80.0135},
		b:         [3]float64{52.0678, 0.968978, -18.2832},
		c:         [3]float64{-34.3367, 0.818403, 3.55466},
		d:         [3]float64{7.96189, -0.356898, -0.288758},
		e:         [3]float64{0.455643, -1.88073, -41.0125},
		defaultCp: 34.906,
	},
	CrH: {
		a:         [3]float64{24.6453, 40.9948, 100.083},
		b:         [3]float64{12.9392, -3.29251, -36.2074},
		c:         [3]float64{0.0477315, 1.40327, 7.79945},
		d:         [3]float64{-2.45803, -0.0468814, -0.458881},
		e:         [3]float64{0.0859445, -3.87926, -68.1415},
		defaultCp: 29.417,
	},
	Na: {
		a:         [3]float64{20.8154, 21.0812, 38.7681},
		b:         [3]float64{-0.162936, -0.0211313, -9.69137},
		c:         [3]float64{0.281035, -0.188686, 1.61045},
		d:         [3]float64{-0.149202, 0.0703542, -0.0183163},
		e:         [3]float64{-0.000166252, -0.169969, -21.5246},
		defaultCp: 20.786,
	},
	K: {
		a:         [3]float64{20.8154, 20.1077, 80.8587},
		b:         [3]float64{-0.162936, 1.72326, -38.6316},
		c:         [3]float64{0.281035, -1.42054, 8.80886},
		d:         [3]float64{-0.149202, 0.388577, -0.553605},
		e:         [3]float64{-0.000166252, -0.0178336, -57.1459},
		defaultCp: 20.786,
	},
	Rb: {
		a:         [3]float64{20.8110, 21.8305, 67.6946},
		b:         [3]float64{-0.139382, -0.120618, -36.4056},
		c:         [3]float64{0.241553, -0.759797, 9.45407},
		d:         [3]float64{-0.129505, 0.324361, -0.654225},
		e:         [3]float64{-0.000134562, -0.519578, -22.9711},
		defaultCp: 20.786,
	},
	Cs: {
		a:         [3]float64{20.8111, 19.3844, -99.0597},
		b:         [3]float64{-0.139259, 3.51623, 42.3576},
		c:         [3]float64{0.238592, -3.00169, -2.76224},
		d:         [3]float64{-0.126005, 0.867065, -0.0552789},
		e:         [3]float64{-0.000147773, 0.0177750, 218.172},
		defaultCp: 20.786,
	},
	CO2: {
		a:         [3]float64{17.1622, 59.7854, 65.7964},
		b:         [3]float64{84.3617, -0.472970, -1.17414},
		c:         [3]float64{-71.5668, 1.36583, 0.232788},
		d:         [3]float64{24.3579, -0.300212, -0.00788867},
		e:         [3]float64{0.0429191, -6.20314, -17.2749},
		defaultCp: 20.786,
	},
}

// heatCapacity returns the ideal-gas heat capacity of a species in erg/g/K,
// using the polynomial fit regime matching T: 100–1000 K, 1000–2500 K, or
// above 2500 K. Below 100 K the per-species default constant applies.
func heatCapacity(sp Species, T float64) float64 {
	fit := cpFits[sp]
	tr := T / 1000.0

	var cp float64 // J/K/mol
	switch {
	case T > 2500.0:
		cp = fit.poly(2, tr)
	case T > 1000.0:
		cp = fit.poly(1, tr)
	case T >= 100.0:
		cp = fit.poly(0, tr)
	default:
		cp = fit.defaultCp
	}

	return cp / molarMass[sp] * 1e7 // J/K/mol → erg/g/K
}

// poly evaluates the regime-it fit at reduced temperature tr = T/1000.
func (s shomate) poly(it int, tr float64) float64 {
	return s.a[it] + s.b[it]*tr + s.c[it]*tr*tr + s.d[it]*tr*tr*tr + s.e[it]/(tr*tr)
}
