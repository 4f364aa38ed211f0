package ground

import (
	"math"
	"math/cmplx"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestFlowResistivityBoundingSurfaces(t *testing.T) {
	if got := FlowResistivity(Hard, 0, InterpolationISO9613); got != SigmaHard {
		t.Errorf("FlowResistivity(Hard) = %v, want %v", got, SigmaHard)
	}
	if got := FlowResistivity(Soft, 1, InterpolationISO9613); got != SigmaSoft {
		t.Errorf("FlowResistivity(Soft) = %v, want %v", got, SigmaSoft)
	}
}

func TestFlowResistivityMixedInterpolatesBetweenBounds(t *testing.T) {
	linear := FlowResistivity(Mixed, 0.5, InterpolationISO9613)
	if linear <= SigmaSoft || linear >= SigmaHard {
		t.Errorf("linear mix at g=0.5 out of bounds: %v", linear)
	}
	logMix := FlowResistivity(Mixed, 0.5, InterpolationLogarithmic)
	if logMix <= SigmaSoft || logMix >= SigmaHard {
		t.Errorf("log mix at g=0.5 out of bounds: %v", logMix)
	}
}

func TestFlowResistivityClampsMixFactor(t *testing.T) {
	approxEqual(t, FlowResistivity(Mixed, -1, InterpolationISO9613), SigmaHard, 1e-6)
	approxEqual(t, FlowResistivity(Mixed, 2, InterpolationISO9613), SigmaSoft, 1e-6)
}

func TestNormalisedImpedanceAutoSelectsByRatio(t *testing.T) {
	autoSoft := NormalisedImpedance(Auto, 500, SigmaHard) // small f/sigma -> Delany-Bazley
	db := NormalisedImpedance(DelanyBazley, 500, SigmaHard)
	if autoSoft != db {
		t.Errorf("Auto did not select Delany-Bazley for small f/sigma: got %v, want %v", autoSoft, db)
	}
}

func TestReflectionCoefficientMagnitudeBoundedByOne(t *testing.T) {
	zn := NormalisedImpedance(DelanyBazley, 500, SigmaSoft)
	gamma := ReflectionCoefficient(zn, DefaultGrazingAngle)
	if cmplx.Abs(gamma) > 1.0+1e-9 {
		t.Errorf("|Gamma| = %v, want <= 1", cmplx.Abs(gamma))
	}
}

func TestReflectionCoefficientHardGroundNearTotal(t *testing.T) {
	// A very large flow resistivity (rigid ground) should reflect most
	// of the incident pressure near grazing incidence.
	zn := NormalisedImpedance(DelanyBazley, 10, SigmaHard)
	gamma := ReflectionCoefficient(zn, DefaultGrazingAngle)
	if cmplx.Abs(gamma) < 0.8 {
		t.Errorf("expected near-total reflection over hard ground, got |Gamma|=%v", cmplx.Abs(gamma))
	}
}

func TestLegacyAbar(t *testing.T) {
	if got := LegacyAbar(Hard, 0); got != 0 {
		t.Errorf("LegacyAbar(Hard) = %v, want 0", got)
	}
	if got := LegacyAbar(Soft, 1); got != 4.8 {
		t.Errorf("LegacyAbar(Soft) = %v, want 4.8", got)
	}
	approxEqual(t, LegacyAbar(Mixed, 0.5), 2.4, 1e-9)
}
