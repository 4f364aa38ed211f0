package spectral

import (
	"github.com/KanuToCL/geonoise/internal/atmo"
	"github.com/KanuToCL/geonoise/internal/ground"
)

// BandConfig bundles the propagation settings the per-band phasor
// construction needs.
type BandConfig struct {
	SpeedOfSound      float64
	Spreading         string
	AtmosphericModel  atmo.Model
	Atmospheric       atmo.Conditions
	GroundType        ground.GroundType
	GroundMixedFactor float64
	GroundInterp      ground.Interpolation
	GroundModel       string // "legacy" | "twoRayPhasor"
	ImpedanceModel    ground.ImpedanceModel
	GrazingAngle      float64
	CoherentSummation bool
}
