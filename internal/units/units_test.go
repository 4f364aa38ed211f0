package units

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestDBPressureRoundTrip(t *testing.T) {
	cases := []float64{-40, 0, 40, 94}
	for _, levelDB := range cases {
		p := DBToPressure(levelDB)
		back := PressureToDB(p)
		approxEqual(t, back, levelDB, 1e-9)
	}
}

func TestSumPowerDBEqualSources(t *testing.T) {
	// Two identical incoherent sources add 3.01 dB.
	got := SumPowerDB([]float64{60, 60})
	approxEqual(t, got, 63.0103, 1e-3)
}

func TestSumPowerDBEmpty(t *testing.T) {
	if got := SumPowerDB(nil); got != FloorDB {
		t.Errorf("SumPowerDB(nil) = %v, want %v", got, FloorDB)
	}
}

func TestSumPowerDBSkipsNonFinite(t *testing.T) {
	got := SumPowerDB([]float64{60, math.NaN(), math.Inf(1)})
	approxEqual(t, got, 60, 1e-9)
}

func TestOverallLevelZWeightingIsFlat(t *testing.T) {
	var spectrum [9]float64
	for i := range spectrum {
		spectrum[i] = 50
	}
	got := OverallLevel(spectrum, WeightingZ)
	want := 50 + 10*math.Log10(9.0)
	approxEqual(t, got, want, 1e-6)
}

func TestSpreadingLoss(t *testing.T) {
	cases := []struct {
		name string
		kind string
		d    float64
		want float64
	}{
		{"spherical at 10m", SpreadingSpherical, 10, 20},
		{"spherical clamps below 1m", SpreadingSpherical, 0.1, 0},
		{"cylindrical at 10m", SpreadingCylindrical, 10, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			approxEqual(t, SpreadingLoss(c.kind, c.d), c.want, 1e-9)
		})
	}
}

func TestSpeedOfSoundIncreasesWithTemperature(t *testing.T) {
	cold := SpeedOfSound(0)
	warm := SpeedOfSound(20)
	if warm <= cold {
		t.Errorf("expected SpeedOfSound to increase with temperature, got cold=%v warm=%v", cold, warm)
	}
	approxEqual(t, cold, 331.3, 1e-9)
}

func TestWeightingSelection(t *testing.T) {
	if Weighting("A") != WeightingA {
		t.Error("Weighting(\"A\") did not return WeightingA")
	}
	if Weighting("C") != WeightingC {
		t.Error("Weighting(\"C\") did not return WeightingC")
	}
	if Weighting("unknown") != WeightingZ {
		t.Error("Weighting fallback did not return WeightingZ")
	}
}
