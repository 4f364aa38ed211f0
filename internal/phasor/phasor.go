// Package phasor implements the (pressure, phase) representation used
// to combine paths coherently within a source, per §3 and §4.4.
package phasor

import (
	"math"
	"math/cmplx"

	"github.com/KanuToCL/geonoise/internal/units"
)

// Phasor is a single-frequency pressure/phase pair.
type Phasor struct {
	Pressure float64 // Pa, non-negative
	Phase    float64 // radians, unwrapped real
}

// FromLevel builds a Phasor from a level in dB, a path length, a
// wavenumber k=2*pi*f/c, and an extra phase offset (reflection phase
// changes etc). Pressure is clamped at units.PressureFloor.
func FromLevel(levelDB, k, d, extraPhase float64) Phasor {
	p := units.DBToPressure(levelDB)
	if p < units.PressureFloor {
		p = units.PressureFloor
	}
	phase := -k*d + extraPhase
	return Phasor{Pressure: p, Phase: phase}
}

// complex returns the phasor as a complex pressure amplitude.
func (ph Phasor) complex() complex128 {
	return cmplx.Rect(ph.Pressure, ph.Phase)
}

// CoherentSum adds phasors as complex numbers and returns the resulting
// level in dB -- the within-source combine of §4.4.
func CoherentSum(phasors []Phasor) float64 {
	if len(phasors) == 0 {
		return units.FloorDB
	}
	var acc complex128
	for _, ph := range phasors {
		acc += ph.complex()
	}
	mag := cmplx.Abs(acc)
	return units.PressureToDB(mag)
}

// EnergeticSum adds phasors as independent energies (sqrt(sum(p^2))),
// used when coherentSummation is disabled for the within-source combine.
func EnergeticSum(phasors []Phasor) float64 {
	if len(phasors) == 0 {
		return units.FloorDB
	}
	var sumSq float64
	for _, ph := range phasors {
		sumSq += ph.Pressure * ph.Pressure
	}
	return units.PressureToDB(math.Sqrt(sumSq))
}
