package phasor

import (
	"math"
	"testing"

	"github.com/KanuToCL/geonoise/internal/units"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestCoherentSumInPhaseDoubles(t *testing.T) {
	a := FromLevel(60, 0, 0, 0)
	b := FromLevel(60, 0, 0, 0)
	got := CoherentSum([]Phasor{a, b})
	// Two in-phase, equal-pressure sources double pressure: +6.02 dB.
	approxEqual(t, got, 66.02, 1e-2)
}

func TestCoherentSumOutOfPhaseCancels(t *testing.T) {
	a := FromLevel(60, 0, 0, 0)
	b := FromLevel(60, 0, 0, math.Pi)
	got := CoherentSum([]Phasor{a, b})
	// PressureToDB clamps the residual at PressureFloor, so full
	// cancellation reads as that floor's level.
	if got > units.PressureToDB(units.PressureFloor)+1e-6 {
		t.Errorf("expected near-cancellation, got %v dB", got)
	}
}

func TestEnergeticSumMatchesIncoherentAdd(t *testing.T) {
	a := FromLevel(60, 0, 0, 0)
	b := FromLevel(60, 0, 0, math.Pi) // phase is ignored by EnergeticSum
	got := EnergeticSum([]Phasor{a, b})
	approxEqual(t, got, units.SumPowerDB([]float64{60, 60}), 1e-6)
}

func TestSumsOfEmptyYieldFloor(t *testing.T) {
	if got := CoherentSum(nil); got != units.FloorDB {
		t.Errorf("CoherentSum(nil) = %v, want floor %v", got, units.FloorDB)
	}
	if got := EnergeticSum(nil); got != units.FloorDB {
		t.Errorf("EnergeticSum(nil) = %v, want floor %v", got, units.FloorDB)
	}
}

func TestFromLevelClampsTinyPressure(t *testing.T) {
	ph := FromLevel(-500, 1, 1, 0)
	if ph.Pressure < units.PressureFloor {
		t.Errorf("pressure %v below floor %v", ph.Pressure, units.PressureFloor)
	}
}
