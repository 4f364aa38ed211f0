// Package ground implements ground-surface flow resistivity, the
// Delany-Bazley and Miki impedance models, and the Fresnel-equation
// reflection coefficient (§4.2).
package ground

import (
	"math"
	"math/cmplx"
)

// GroundType selects a fixed or mixed flow resistivity.
type GroundType string

const (
	Hard  GroundType = "hard"
	Soft  GroundType = "soft"
	Mixed GroundType = "mixed"
)

// Interpolation selects how a mixed-ground flow resistivity is derived
// from the mix factor G.
type Interpolation string

const (
	InterpolationISO9613      Interpolation = "iso9613"
	InterpolationLogarithmic  Interpolation = "logarithmic"
)

// Flow resistivities, in rayl (Pa.s/m^2), for the two bounding surfaces.
const (
	SigmaHard = 2e6
	SigmaSoft = 2e4
)

// FlowResistivity returns the effective sigma for a ground type, mix
// factor g in [0,1], and interpolation rule.
func FlowResistivity(kind GroundType, g float64, interp Interpolation) float64 {
	switch kind {
	case Hard:
		return SigmaHard
	case Soft:
		return SigmaSoft
	default:
		g = clamp01(g)
		if interp == InterpolationLogarithmic {
			return math.Exp(math.Log(SigmaHard)*(1-g) + math.Log(SigmaSoft)*g)
		}
		return SigmaHard*(1-g) + SigmaSoft*g
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ImpedanceModel selects the empirical fit used to turn f/sigma into a
// dimensionless normalised impedance.
type ImpedanceModel string

const (
	DelanyBazley ImpedanceModel = "delany-bazley"
	Miki         ImpedanceModel = "miki"
	Auto         ImpedanceModel = "auto"
)

// NormalisedImpedance returns the complex normalised surface impedance
// Zn for frequency f and flow resistivity sigma, selecting Delany-Bazley
// or Miki per the model (Auto picks Delany-Bazley when f/sigma<1, Miki
// otherwise). The ratio is clamped away from zero to avoid overflow at
// extreme ratios.
func NormalisedImpedance(model ImpedanceModel, f, sigma float64) complex128 {
	if sigma <= 0 {
		sigma = SigmaHard
	}
	X := f / sigma
	if X < 1e-6 {
		X = 1e-6
	}
	if X > 10 {
		X = 10
	}

	chosen := model
	if model == Auto {
		if X < 1.0 {
			chosen = DelanyBazley
		} else {
			chosen = Miki
		}
	}

	if chosen == Miki {
		re := 1 + 0.0785*math.Pow(X, -0.632)
		im := -0.0870 * math.Pow(X, -0.632)
		return complex(re, im)
	}

	// Delany-Bazley
	re := 1 + 0.0571*math.Pow(X, -0.754)
	im := -0.0870 * math.Pow(X, -0.732)
	return complex(re, im)
}

// ReflectionCoefficient returns the complex pressure reflection
// coefficient Gamma for a normalised impedance Zn and grazing angle
// theta (measured from the ground plane's normal). The default grazing
// angle used when the caller has no geometric angle is pi/2-0.087 rad
// (near-grazing).
func ReflectionCoefficient(zn complex128, theta float64) complex128 {
	costheta := complex(math.Cos(theta), 0)
	num := zn*costheta - 1
	den := zn*costheta + 1
	if cmplx.Abs(den) < 1e-12 {
		return complex(1, 0)
	}
	gamma := num / den
	if cmplx.Abs(gamma) > 1 {
		gamma = gamma / complex(cmplx.Abs(gamma), 0)
	}
	return gamma
}

// DefaultGrazingAngle is used when the caller supplies no geometric
// angle (pi/2 - 0.087 rad, per §4.2).
const DefaultGrazingAngle = math.Pi/2 - 0.087

// LegacyAbar is the tabulated "Abar" ground attenuation used by the
// legacy (non-phasor) ground model, a coarse single-number equivalent
// of a coherent reflection used only for backward comparison runs.
func LegacyAbar(kind GroundType, g float64) float64 {
	switch kind {
	case Hard:
		return 0.0
	case Soft:
		return 4.8
	default:
		return 4.8 * clamp01(g)
	}
}
