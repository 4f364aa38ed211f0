package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/KanuToCL/geonoise/internal/atmo"
	"github.com/KanuToCL/geonoise/internal/diffraction"
	"github.com/KanuToCL/geonoise/internal/ground"
	"github.com/KanuToCL/geonoise/internal/paths"
	"github.com/KanuToCL/geonoise/internal/phasor"
	"github.com/KanuToCL/geonoise/internal/units"
)

// BandLevels turns one source-receiver pair's candidate paths into a
// 9-band spectrum, applying the source's gain offset first (§4.4). An
// empty path set yields the floor on every band. Non-finite
// intermediate results are clamped to the floor and reported as
// warnings rather than propagated.
func BandLevels(candidatePaths []paths.Path, sourceSpectrum [9]float64, gainDB float64, cfg BandConfig, sourceID, receiverID string) (levels [9]float64, warnings []Warning) {
	if len(candidatePaths) == 0 {
		for i := range levels {
			levels[i] = units.FloorDB
		}
		return levels, nil
	}

	for i, f := range units.Bands {
		k := 2 * math.Pi * f / cfg.SpeedOfSound
		alpha := atmo.Absorption(cfg.AtmosphericModel, f, cfg.Atmospheric)

		var phasors []phasor.Phasor
		for _, p := range candidatePaths {
			levelExtra, phaseExtra, ok := extraTerms(p, f, cfg)
			if !ok {
				warnings = append(warnings, Warning{
					Kind: GeometryDegenerate, Message: "path dropped: degenerate geometry",
					SourceID: sourceID, ReceiverID: receiverID, Band: i,
				})
				continue
			}

			levelPath := sourceSpectrum[i] + gainDB - units.SpreadingLoss(cfg.Spreading, p.LevelDistance) - alpha*p.LevelDistance - levelExtra

			if math.IsNaN(levelPath) || math.IsInf(levelPath, 0) {
				warnings = append(warnings, Warning{
					Kind: NumericWarning, Message: fmt.Sprintf("non-finite band level for %s path", p.Kind),
					SourceID: sourceID, ReceiverID: receiverID, Band: i,
				})
				continue
			}

			phasors = append(phasors, phasor.FromLevel(levelPath, k, p.PhaseDistance, phaseExtra))
		}

		if len(phasors) == 0 {
			levels[i] = units.FloorDB
			continue
		}

		if cfg.CoherentSummation {
			levels[i] = phasor.CoherentSum(phasors)
		} else {
			levels[i] = phasor.EnergeticSum(phasors)
		}
	}

	return levels, warnings
}

// PathBandLevels computes one path's per-band level and phase in
// isolation, without summing across the rest of a source's candidate
// paths. It exists for the probe endpoint's path diagnostics
// (SUPPLEMENTED FEATURES "Probe endpoint path diagnostics"), which need
// each path's own contribution rather than the combined spectrum
// BandLevels returns; it shares extraTerms with BandLevels so the two
// never drift apart on the §4.4 formulas.
func PathBandLevels(p paths.Path, sourceSpectrum [9]float64, gainDB float64, cfg BandConfig) (levels, phases [9]float64, ok [9]bool) {
	for i, f := range units.Bands {
		k := 2 * math.Pi * f / cfg.SpeedOfSound
		alpha := atmo.Absorption(cfg.AtmosphericModel, f, cfg.Atmospheric)

		levelExtra, phaseExtra, valid := extraTerms(p, f, cfg)
		if !valid {
			continue
		}

		levelPath := sourceSpectrum[i] + gainDB - units.SpreadingLoss(cfg.Spreading, p.LevelDistance) - alpha*p.LevelDistance - levelExtra
		if math.IsNaN(levelPath) || math.IsInf(levelPath, 0) {
			continue
		}

		levels[i] = levelPath
		phases[i] = -k*p.PhaseDistance + phaseExtra
		ok[i] = true
	}
	return levels, phases, ok
}

// extraTerms resolves L_extra and phi_extra for one path at frequency f,
// per §4.4's table. ok is false only for degenerate ground paths
// (GeometryDegenerate): R2 collapsed to zero, or a zero reflection
// magnitude.
func extraTerms(p paths.Path, f float64, cfg BandConfig) (levelExtra, phaseExtra float64, ok bool) {
	switch p.Kind {
	case paths.Direct:
		return 0, 0, true

	case paths.Ground:
		if p.R2 <= 0 {
			return 0, 0, false
		}
		if cfg.GroundModel == "legacy" {
			abar := ground.LegacyAbar(cfg.GroundType, cfg.GroundMixedFactor)
			return abar, 0, true
		}
		sigma := ground.FlowResistivity(cfg.GroundType, cfg.GroundMixedFactor, cfg.GroundInterp)
		zn := ground.NormalisedImpedance(cfg.ImpedanceModel, f, sigma)
		angle := cfg.GrazingAngle
		if angle == 0 {
			angle = ground.DefaultGrazingAngle
		}
		gamma := ground.ReflectionCoefficient(zn, angle)
		mag := cmplx.Abs(gamma) * (p.R1 / p.R2)
		if mag <= 0 {
			return 0, 0, false
		}
		return -20 * math.Log10(mag), cmplx.Phase(gamma), true

	case paths.WallReflection:
		return p.FixedExtraLevelDB, p.FixedExtraPhase, true

	case paths.BarrierDiff:
		loss := diffraction.SingleEdge(p.DeltaExcess, f, cfg.SpeedOfSound)
		return loss + p.FixedExtraLevelDB, p.FixedExtraPhase, true

	case paths.BuildingDiff:
		var loss float64
		if p.NumEdges >= 2 {
			loss = diffraction.DoubleEdge(p.Delta1, p.Delta2, f, cfg.SpeedOfSound)
		} else {
			loss = diffraction.SingleEdge(p.DeltaExcess, f, cfg.SpeedOfSound)
		}
		return loss + p.FixedExtraLevelDB, p.FixedExtraPhase, true

	default:
		return 0, 0, true
	}
}
