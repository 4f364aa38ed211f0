// Package atmo implements atmospheric absorption models used to
// attenuate each path by alpha(f)*d, per §4.2.
package atmo

import "math"

// Model selects which absorption formula a compute call uses.
type Model string

const (
	None    Model = "none"
	Simple  Model = "simple"
	ISO9613 Model = "iso9613"
)

// Conditions are the atmospheric parameters the absorption formulas need.
type Conditions struct {
	TemperatureC float64
	HumidityPct  float64
	PressureKPa  float64
}

// DefaultConditions returns the numeric defaults from §6.
func DefaultConditions() Conditions {
	return Conditions{TemperatureC: 20, HumidityPct: 50, PressureKPa: 101.325}
}

// Absorption returns alpha(f), in dB/m, for the given model, frequency,
// and atmospheric conditions.
func Absorption(model Model, f float64, c Conditions) float64 {
	switch model {
	case Simple:
		return simpleAbsorption(f)
	case ISO9613:
		return iso9613Absorption(f, c)
	default:
		return 0
	}
}

// simpleAbsorption is a coarse linear-in-log-frequency approximation,
// calibrated against typical ISO 9613 values at 20C/50%RH/1atm so it is
// usable without atmospheric inputs.
func simpleAbsorption(f float64) float64 {
	if f <= 0 {
		return 0
	}
	logF := math.Log10(f)
	alpha := 0.0001 * math.Pow(10, 1.6*logF-3.4)
	if alpha < 0 {
		alpha = 0
	}
	return alpha
}

// iso9613Absorption implements the ISO 9613-1 pure-tone atmospheric
// absorption coefficient as a function of oxygen and nitrogen
// relaxation frequencies.
func iso9613Absorption(f float64, c Conditions) float64 {
	T := c.TemperatureC + 273.15
	T0 := 293.15
	T01 := 273.16
	ps0 := 101.325

	ps := c.PressureKPa
	if ps <= 0 {
		ps = ps0
	}
	psRel := ps / ps0

	// saturation vapour pressure ratio (ISO 9613-1 eq. 3)
	Csat := -6.8346*math.Pow(T01/T, 1.261) + 4.6151
	psat := ps0 * math.Pow(10, Csat)
	h := c.HumidityPct * (psat / ps0) / psRel

	// oxygen relaxation frequency (Hz)
	frO := psRel * (24.0 + 4.04e4*h*(0.02+h)/(0.391+h))

	// nitrogen relaxation frequency (Hz)
	trel := T / T0
	frN := psRel / math.Sqrt(trel) * (9.0 + 280.0*h*math.Exp(-4.170*(math.Pow(trel, -1.0/3.0)-1.0)))

	term1 := 1.84e-11 / psRel * math.Sqrt(trel)

	term2 := math.Pow(trel, -2.5) * (
		0.01275*math.Exp(-2239.1/T)*(frO/(frO*frO+f*f)) +
			0.1068*math.Exp(-3352.0/T)*(frN/(frN*frN+f*f)))

	alphaNp := f * f * (term1 + term2)

	// Np/m -> dB/m
	return alphaNp * 8.686
}
