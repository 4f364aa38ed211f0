package diffraction

import (
	"math"
	"testing"
)

const speedOfSound = 343.0

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestSingleEdgeZeroOrNegativeDeltaIsZero(t *testing.T) {
	if got := SingleEdge(0, 1000, speedOfSound); got != 0 {
		t.Errorf("SingleEdge(0, ...) = %v, want 0", got)
	}
	if got := SingleEdge(-1, 1000, speedOfSound); got != 0 {
		t.Errorf("SingleEdge(-1, ...) = %v, want 0", got)
	}
}

func TestSingleEdgeIncreasesWithDelta(t *testing.T) {
	lossSmall := SingleEdge(0.1, 1000, speedOfSound)
	lossLarge := SingleEdge(1.0, 1000, speedOfSound)
	if lossLarge <= lossSmall {
		t.Errorf("expected loss to grow with path-length excess, got small=%v large=%v", lossSmall, lossLarge)
	}
}

func TestSingleEdgeIncreasesWithFrequency(t *testing.T) {
	lossLow := SingleEdge(0.5, 125, speedOfSound)
	lossHigh := SingleEdge(0.5, 4000, speedOfSound)
	if lossHigh <= lossLow {
		t.Errorf("expected loss to grow with frequency, got low=%v high=%v", lossLow, lossHigh)
	}
}

func TestDoubleEdgeBothNonPositiveIsZero(t *testing.T) {
	if got := DoubleEdge(0, -1, 1000, speedOfSound); got != 0 {
		t.Errorf("DoubleEdge(0, -1, ...) = %v, want 0", got)
	}
}

func TestDoubleEdgeLessThanNaiveSum(t *testing.T) {
	l1 := SingleEdge(0.4, 1000, speedOfSound)
	l2 := SingleEdge(0.3, 1000, speedOfSound)
	combined := DoubleEdge(0.4, 0.3, 1000, speedOfSound)
	if combined >= l1+l2 {
		t.Errorf("expected coupled double-edge loss below naive sum %v, got %v", l1+l2, combined)
	}
}

func TestDoubleEdgeReducesToSingleEdgeWhenOneDeltaDegenerates(t *testing.T) {
	want := SingleEdge(1.0, 1000, speedOfSound)
	got := DoubleEdge(1.0, 0, 1000, speedOfSound)
	approxEqual(t, got, want, 1e-9)

	gotOtherOrder := DoubleEdge(0, 1.0, 1000, speedOfSound)
	approxEqual(t, gotOtherOrder, want, 1e-9)
}

func TestFresnelNumberScalesLinearly(t *testing.T) {
	n1 := FresnelNumber(1, 1000, speedOfSound)
	n2 := FresnelNumber(2, 1000, speedOfSound)
	approxEqual(t, n2, 2*n1, 1e-9)
}
