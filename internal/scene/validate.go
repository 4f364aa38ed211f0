package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/KanuToCL/geonoise/internal/errs"
	"github.com/KanuToCL/geonoise/internal/geom"
)

var structValidator = validator.New()

// Validate checks a scene document against the JSON-schema-shaped
// struct tags first (required fields, ranges), then the semantic
// invariants of §3 that struct tags cannot express: duplicate ids,
// finite spectra, simple polygons, barrier endpoint distinctness. It
// also normalises building footprint winding to CCW in place.
//
// Returns errs.ErrInvalidScene (wrapped with detail) on any violation,
// plus any non-fatal warnings (schema version skew).
func Validate(s *Scene) (warnings []string, err error) {
	if verr := structValidator.Struct(s); verr != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidScene, verr)
	}

	if w, verr := checkVersion(s.Version); verr != nil {
		return nil, verr
	} else if w != "" {
		warnings = append(warnings, w)
	}

	if verr := checkDuplicateIDs(s); verr != nil {
		return warnings, verr
	}

	for i := range s.Sources {
		if verr := checkSpectrum(s.Sources[i].ID, s.Sources[i].Spectrum); verr != nil {
			return warnings, verr
		}
		if s.Sources[i].Position.Z < 0 {
			return warnings, fmt.Errorf("%w: source %s: %v", errs.ErrInvalidScene, s.Sources[i].ID, errs.ErrNegativeZ)
		}
	}
	for i := range s.Receivers {
		if s.Receivers[i].Position.Z < 0 {
			return warnings, fmt.Errorf("%w: receiver %s: %v", errs.ErrInvalidScene, s.Receivers[i].ID, errs.ErrNegativeZ)
		}
	}

	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if o.Height <= 0 {
			return warnings, fmt.Errorf("%w: obstacle %s: %v", errs.ErrInvalidScene, o.ID, errs.ErrNegativeHeight)
		}
		switch o.Kind {
		case KindBarrier:
			if o.P1 == o.P2 {
				return warnings, fmt.Errorf("%w: barrier %s: %v", errs.ErrInvalidScene, o.ID, errs.ErrBarrierZeroLength)
			}
		case KindBuilding:
			if len(o.Footprint) < 3 {
				return warnings, fmt.Errorf("%w: building %s: %v", errs.ErrInvalidScene, o.ID, errs.ErrDegeneratePolygon)
			}
			if verr := checkSimplePolygon(o.ID, o.Footprint); verr != nil {
				return warnings, verr
			}
			o.Footprint = normaliseCCW(o.Footprint)
		}
	}

	return warnings, nil
}

func checkVersion(version string) (warning string, err error) {
	major := strings.SplitN(version, ".", 2)[0]
	wantMajor := strings.SplitN(SchemaVersion, ".", 2)[0]
	if major != wantMajor {
		return "", fmt.Errorf("%w: scene version %q, engine expects major %q", errs.ErrInvalidScene, version, wantMajor)
	}
	if version != SchemaVersion {
		return fmt.Sprintf("scene version %q newer/older than engine's %q: %v", version, SchemaVersion, errs.ErrSchemaVersion), nil
	}
	return "", nil
}

// checkDuplicateIDs uses lo.FindDuplicates the way the teacher's qa.go
// finds duplicate ping timestamps, applied across each id-bearing array.
func checkDuplicateIDs(s *Scene) error {
	sourceIDs := lo.Map(s.Sources, func(x Source, _ int) string { return x.ID })
	if dups := lo.FindDuplicates(sourceIDs); len(dups) > 0 {
		return fmt.Errorf("%w: sources: %v: %v", errs.ErrInvalidScene, errs.ErrDuplicateID, dups)
	}

	receiverIDs := lo.Map(s.Receivers, func(x Receiver, _ int) string { return x.ID })
	if dups := lo.FindDuplicates(receiverIDs); len(dups) > 0 {
		return fmt.Errorf("%w: receivers: %v: %v", errs.ErrInvalidScene, errs.ErrDuplicateID, dups)
	}

	panelIDs := lo.Map(s.Panels, func(x Panel, _ int) string { return x.ID })
	if dups := lo.FindDuplicates(panelIDs); len(dups) > 0 {
		return fmt.Errorf("%w: panels: %v: %v", errs.ErrInvalidScene, errs.ErrDuplicateID, dups)
	}

	obstacleIDs := lo.Map(s.Obstacles, func(x Obstacle, _ int) string { return x.ID })
	if dups := lo.FindDuplicates(obstacleIDs); len(dups) > 0 {
		return fmt.Errorf("%w: obstacles: %v: %v", errs.ErrInvalidScene, errs.ErrDuplicateID, dups)
	}

	return nil
}

// checkSpectrum requires exactly 9 finite entries (already guaranteed by
// the [9]float64 array type); this just scans for NaN/Inf the way the
// teacher scans beam arrays for sentinel nulls.
func checkSpectrum(id string, spectrum Spectrum) error {
	bad := lo.ContainsBy(spectrum[:], func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0)
	})
	if bad {
		return fmt.Errorf("%w: source %s: %v", errs.ErrInvalidScene, id, errs.ErrNonFiniteSpectrum)
	}
	return nil
}

// checkSimplePolygon rejects footprints with self-intersecting,
// non-adjacent edges.
func checkSimplePolygon(id string, poly []Point2) error {
	n := len(poly)
	pts := make([]geom.Point2, n)
	for i, p := range poly {
		pts[i] = p.toGeom()
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (j+1)%n == i {
				continue
			}
			c, d := pts[j], pts[(j+1)%n]
			if _, ok := geom.IntersectSegment(a, b, c, d); ok {
				return fmt.Errorf("%w: building %s", errs.ErrInvalidScene, id)
			}
		}
	}
	return nil
}

func normaliseCCW(poly []Point2) []Point2 {
	pts := make([]geom.Point2, len(poly))
	for i, p := range poly {
		pts[i] = p.toGeom()
	}
	pts = geom.EnsureCCW(pts)
	out := make([]Point2, len(pts))
	for i, p := range pts {
		out[i] = Point2{X: p.X, Y: p.Y}
	}
	return out
}
