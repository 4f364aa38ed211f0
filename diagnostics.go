package geonoise

import (
	"math"

	"github.com/google/uuid"

	"github.com/KanuToCL/geonoise/internal/geom"
	"github.com/KanuToCL/geonoise/internal/paths"
	"github.com/KanuToCL/geonoise/internal/scene"
	"github.com/KanuToCL/geonoise/internal/spectral"
	"github.com/KanuToCL/geonoise/internal/units"
)

// traceProbePaths enumerates every candidate path from every active
// source to rcv and turns each into a TracedPath plus the pairwise
// phase relationships a caller uses to render an interference diagram
// (SUPPLEMENTED FEATURES "Probe endpoint path diagnostics"). GhostCount
// is the number of valid non-direct arrivals at the probe -- the
// reflected and diffracted "ghosts" of the direct path that a caller's
// interference view highlights separately.
func traceProbePaths(sources []scene.Source, rcv geom.Point3, rc resolvedConfig) (traced []TracedPath, pairs []PhasePair, ghostCount int) {
	type candidate struct {
		path    paths.Path
		levels  [9]float64
		phases  [9]float64
		ok      [9]bool
	}
	var all []candidate

	for _, src := range sources {
		srcPos := geom.Point3{X: src.Position.X, Y: src.Position.Y, Z: src.Position.Z}
		ps := paths.Enumerate(srcPos, rcv, rc.obstacles, rc.pathCfg)
		for _, p := range ps {
			levels, phases, ok := spectral.PathBandLevels(p, src.Spectrum, src.GainDB, rc.bandCfg)
			all = append(all, candidate{path: p, levels: levels, phases: phases, ok: ok})
			if p.Kind != paths.Direct {
				ghostCount++
			}
		}
	}

	traced = make([]TracedPath, len(all))
	for i, c := range all {
		var perBand [9]BandSample
		for b := 0; b < 9; b++ {
			if c.ok[b] {
				perBand[b] = BandSample{Level: c.levels[b], Phase: c.phases[b]}
			} else {
				perBand[b] = BandSample{Level: units.FloorDB, Phase: 0}
			}
		}
		traced[i] = TracedPath{
			ID:       uuid.NewString(),
			Kind:     string(c.path.Kind),
			Length:   c.path.LevelDistance,
			Valid:    true,
			Segments: c.path.Segments,
			PerBand:  perBand,
		}
	}

	for i := 0; i < len(traced); i++ {
		for j := i + 1; j < len(traced); j++ {
			for b := 0; b < 9; b++ {
				if !all[i].ok[b] || !all[j].ok[b] {
					continue
				}
				delta := wrapPhase(traced[j].PerBand[b].Phase - traced[i].PerBand[b].Phase)
				pairs = append(pairs, PhasePair{
					PathAID:    traced[i].ID,
					PathBID:    traced[j].ID,
					Band:       b,
					DeltaPhase: delta,
				})
			}
		}
	}

	return traced, pairs, ghostCount
}

// wrapPhase folds a phase difference into (-pi, pi].
func wrapPhase(phase float64) float64 {
	for phase > math.Pi {
		phase -= 2 * math.Pi
	}
	for phase <= -math.Pi {
		phase += 2 * math.Pi
	}
	return phase
}
