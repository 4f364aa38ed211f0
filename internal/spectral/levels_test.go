package spectral

import (
	"math"
	"testing"

	"github.com/KanuToCL/geonoise/internal/atmo"
	"github.com/KanuToCL/geonoise/internal/ground"
	"github.com/KanuToCL/geonoise/internal/paths"
	"github.com/KanuToCL/geonoise/internal/units"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func testBandConfig() BandConfig {
	return BandConfig{
		SpeedOfSound:      343,
		Spreading:         units.SpreadingSpherical,
		AtmosphericModel:  atmo.None,
		GroundType:        ground.Hard,
		GroundModel:       "legacy",
		ImpedanceModel:    ground.DelanyBazley,
		CoherentSummation: true,
	}
}

func TestBandLevelsEmptyPathsYieldFloor(t *testing.T) {
	var spectrum [9]float64
	levels, warnings := BandLevels(nil, spectrum, 0, testBandConfig(), "s1", "r1")
	for i, l := range levels {
		if l != units.FloorDB {
			t.Errorf("band %d = %v, want floor %v", i, l, units.FloorDB)
		}
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for an empty path set, got %v", warnings)
	}
}

func TestBandLevelsDirectPathMatchesSpreadingAndSpectrum(t *testing.T) {
	var spectrum [9]float64
	for i := range spectrum {
		spectrum[i] = 90
	}
	p := paths.Path{Kind: paths.Direct, LevelDistance: 10, PhaseDistance: 10}
	levels, warnings := BandLevels([]paths.Path{p}, spectrum, 0, testBandConfig(), "s1", "r1")
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	want := 90 - 20*math.Log10(10)
	for i, l := range levels {
		approxEqual(t, l, want, 1e-6)
		_ = i
	}
}

func TestPathBandLevelsMatchesBandLevelsForSinglePath(t *testing.T) {
	var spectrum [9]float64
	for i := range spectrum {
		spectrum[i] = 80
	}
	p := paths.Path{Kind: paths.Direct, LevelDistance: 20, PhaseDistance: 20}
	cfg := testBandConfig()

	combined, _ := BandLevels([]paths.Path{p}, spectrum, 2, cfg, "s1", "r1")
	levels, _, ok := PathBandLevels(p, spectrum, 2, cfg)
	for i := range levels {
		if !ok[i] {
			t.Fatalf("band %d not ok", i)
		}
		approxEqual(t, levels[i], combined[i], 1e-9)
	}
}

func TestBandLevelsGroundDegenerateIsDropped(t *testing.T) {
	var spectrum [9]float64
	p := paths.Path{Kind: paths.Ground, LevelDistance: 10, PhaseDistance: 10, R1: 10, R2: 0}
	levels, warnings := BandLevels([]paths.Path{p}, spectrum, 0, testBandConfig(), "s1", "r1")
	for i, l := range levels {
		if l != units.FloorDB {
			t.Errorf("band %d = %v, want floor (degenerate ground path dropped)", i, l)
		}
	}
	if len(warnings) == 0 {
		t.Error("expected a GeometryDegenerate warning for a collapsed ground path")
	}
}

func TestCombineSourcesIncoherentAdd(t *testing.T) {
	var a, b [9]float64
	for i := range a {
		a[i] = 60
		b[i] = 60
	}
	combined := CombineSources([][9]float64{a, b})
	for i, l := range combined {
		approxEqual(t, l, units.SumPowerDB([]float64{60, 60}), 1e-6)
		_ = i
	}
}
