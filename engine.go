package geonoise

import (
	"fmt"

	"github.com/KanuToCL/geonoise/internal/atmo"
	"github.com/KanuToCL/geonoise/internal/errs"
	"github.com/KanuToCL/geonoise/internal/geom"
	"github.com/KanuToCL/geonoise/internal/ground"
	"github.com/KanuToCL/geonoise/internal/paths"
	"github.com/KanuToCL/geonoise/internal/request"
	"github.com/KanuToCL/geonoise/internal/scene"
	"github.com/KanuToCL/geonoise/internal/spectral"
	"github.com/KanuToCL/geonoise/internal/units"
)

// Engine is the compute entry point (§2: "a pure function of an
// immutable scene and a list of query points"). The only state it
// carries across calls is the request-sequence tracker named in §5;
// everything else lives inside one Compute/Probe call.
type Engine struct {
	tracker  *request.Tracker
	backendID string
}

// NewEngine builds an Engine identified as backendID in every response
// (§6 "backendId"), e.g. "cpu-0" when a caller routes between several
// backend instances.
func NewEngine(backendID string) *Engine {
	if backendID == "" {
		backendID = "cpu"
	}
	return &Engine{tracker: request.NewTracker(), backendID: backendID}
}

// resolvedConfig bundles everything derived once per compute call from
// a scene and propagation config: the band config physics bundle, the
// path enumerator's config, and the pre-projected obstacle set.
type resolvedConfig struct {
	cfg      scene.PropagationConfig
	bandCfg  spectral.BandConfig
	pathCfg  paths.Config
	obstacles paths.ObstacleSet
}

func resolve(s *scene.Scene, cfgIn *scene.PropagationConfig) resolvedConfig {
	cfg := scene.WithDefaults(cfgIn)

	// cfg has already passed through scene.WithDefaults above, so these
	// pointer fields are guaranteed non-nil here; the pointer only
	// matters at the scene-document boundary, where nil vs. an explicit
	// 0 must be told apart.
	temperatureC := *cfg.Atmospheric.TemperatureC
	humidityPct := *cfg.Atmospheric.HumidityPct
	mixedFactor := *cfg.Ground.MixedFactor

	c := 331.3
	if cfg.SpeedOfSound != nil && *cfg.SpeedOfSound > 0 {
		c = *cfg.SpeedOfSound
	} else {
		c = units.SpeedOfSound(temperatureC)
	}

	bandCfg := spectral.BandConfig{
		SpeedOfSound:     c,
		Spreading:        cfg.Spreading,
		AtmosphericModel: atmo.Model(cfg.Atmospheric.Model),
		Atmospheric: atmo.Conditions{
			TemperatureC: temperatureC,
			HumidityPct:  humidityPct,
			PressureKPa:  cfg.Atmospheric.PressureKPa,
		},
		GroundType:        ground.GroundType(cfg.Ground.Type),
		GroundMixedFactor: mixedFactor,
		GroundInterp:      ground.Interpolation(cfg.Ground.Interpolation),
		GroundModel:       string(cfg.Ground.Model),
		ImpedanceModel:    ground.ImpedanceModel(cfg.Ground.ImpedanceModel),
		CoherentSummation: cfg.CoherentSummation,
	}

	pathCfg := paths.Config{
		GroundEnabled: cfg.Ground.Enabled,
		MaxDistance:   cfg.MaxPropagationDistance,
	}

	return resolvedConfig{
		cfg:       cfg,
		bandCfg:   bandCfg,
		pathCfg:   pathCfg,
		obstacles: paths.BuildObstacleSet(s, cfg.BarrierSideDiffraction),
	}
}

// evaluateAt sums every active source's contribution at rcv, §4.4's
// per-source-then-incoherent-combine pipeline.
func evaluateAt(sources []scene.Source, rcv geom.Point3, rc resolvedConfig, receiverID string) (spectrum [9]float64, warnings []spectral.Warning) {
	perSource := make([][9]float64, 0, len(sources))
	for _, src := range sources {
		srcPos := geom.Point3{X: src.Position.X, Y: src.Position.Y, Z: src.Position.Z}
		candidates := paths.Enumerate(srcPos, rcv, rc.obstacles, rc.pathCfg)
		levels, w := spectral.BandLevels(candidates, src.Spectrum, src.GainDB, rc.bandCfg, src.ID, receiverID)
		perSource = append(perSource, levels)
		warnings = append(warnings, w...)
	}
	if len(perSource) == 0 {
		for i := range spectrum {
			spectrum[i] = units.FloorDB
		}
		return spectrum, warnings
	}
	return spectral.CombineSources(perSource), warnings
}

// beginRequest submits id to the tracker and returns the new sequence
// that the request's later checkStale calls compare against. It never
// fails itself: a request superseded by a newer submission with the
// same id is caught at its next checkStale.
func (e *Engine) beginRequest(id string) uint64 {
	return e.tracker.Submit(id)
}

// checkStale returns ErrStale if seq is no longer current for id, the
// check made at each phase boundary named in §4.6/§5.
func (e *Engine) checkStale(id string, seq uint64) error {
	if !e.tracker.Current(id, seq) {
		return fmt.Errorf("%w: request %q superseded", errs.ErrStale, id)
	}
	return nil
}
