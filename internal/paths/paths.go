// Package paths implements the path enumerator (§4.3): for one
// source-receiver pair it produces the candidate direct, ground,
// barrier-diffraction, building-diffraction and wall-reflection paths,
// keeping only those that pass their occlusion predicate; invalid
// candidates are dropped, not returned.
package paths

import (
	"github.com/KanuToCL/geonoise/internal/geom"
	"github.com/KanuToCL/geonoise/internal/scene"
)

// Kind names the physical path type, used both for diagnostics and to
// select the L_extra/phase_extra rule of §4.4's table.
type Kind string

const (
	Direct         Kind = "direct"
	Ground         Kind = "ground"
	WallReflection Kind = "wall"
	BarrierDiff    Kind = "barrierDiffraction"
	BuildingDiff   Kind = "buildingDiffraction"
)

// SubKind further distinguishes diagnostics within a Kind; it carries no
// physics of its own (the formulas in §4.4's table only branch on Kind
// and edge count).
type SubKind string

const (
	SubNone           SubKind = ""
	SubOverTop        SubKind = "overTop"
	SubAroundEnd      SubKind = "aroundEnd"
	SubOverRoof       SubKind = "overRoof"
	SubAroundCorner   SubKind = "aroundCorner"
)

// Path is one candidate acoustic path between a source and a receiver.
// It carries only band-independent geometry; package spectral turns a
// Path into a per-band phasor using §4.4's table, since Maekawa loss and
// the ground reflection coefficient are both frequency-dependent.
type Path struct {
	Kind    Kind
	Sub     SubKind

	// LevelDistance feeds L_spread(d) and alpha(f)*d in §4.4's generic
	// formula; PhaseDistance feeds -k*d. They coincide for every path
	// type except ground reflection, where the classical two-ray model
	// references spreading/absorption to r1 but phase to the true
	// travelled distance r2.
	LevelDistance float64
	PhaseDistance float64

	// Ground-only: the two legs of the image-source geometry.
	R1, R2 float64

	// Diffraction-only: path-length excess(es) feeding Maekawa.
	// NumEdges is 1 for barrier/around-corner paths, 2 for over-roof.
	DeltaExcess   float64
	Delta1, Delta2 float64
	NumEdges      int

	// FixedExtraLevelDB/FixedExtraPhase are the band-independent parts
	// of L_extra/phi_extra (wall's -20log10(0.9) and pi, diffraction's
	// -pi/4 per edge) plus the obstacle's own scene-authored
	// attenuation, rolled in once here.
	FixedExtraLevelDB float64
	FixedExtraPhase   float64

	ObstacleID string
	Segments   []geom.Point3 // S -> ... -> R, for probe diagnostics
}

// ObstacleSet is the pre-projected geometry the enumerator tests
// against, built once per compute call and reused for every
// source-receiver pair.
type ObstacleSet struct {
	BarrierSegs    [][2]geom.Point2
	BarrierHeights []float64
	BarrierGround  []float64
	BarrierAtten   []float64
	BarrierSideOn  []bool
	BarrierIDs     []string

	Buildings     []geom.Building
	BuildingAtten []float64
	BuildingIDs   []string
}

// BuildObstacleSet projects a scene's enabled obstacles into the
// geometry kernel's shapes, resolving each barrier's side-diffraction
// mode against its own length.
func BuildObstacleSet(s *scene.Scene, sideMode scene.SideDiffractionMode) ObstacleSet {
	var set ObstacleSet
	for _, b := range s.Barriers() {
		p1 := geom.Point2{X: b.P1.X, Y: b.P1.Y}
		p2 := geom.Point2{X: b.P2.X, Y: b.P2.Y}
		set.BarrierSegs = append(set.BarrierSegs, [2]geom.Point2{p1, p2})
		set.BarrierHeights = append(set.BarrierHeights, b.GroundElevation+b.Height)
		set.BarrierGround = append(set.BarrierGround, b.GroundElevation)
		set.BarrierAtten = append(set.BarrierAtten, b.AttenuationDB)
		set.BarrierIDs = append(set.BarrierIDs, b.ID)
		length := geom.Dist2(p1, p2)
		set.BarrierSideOn = append(set.BarrierSideOn, scene.BarrierSideDiffractionEnabled(sideMode, length))
	}
	for _, bu := range s.Buildings() {
		fp := make([]geom.Point2, len(bu.Footprint))
		for i, v := range bu.Footprint {
			fp[i] = geom.Point2{X: v.X, Y: v.Y}
		}
		set.Buildings = append(set.Buildings, geom.Building{Footprint: fp, Height: bu.Height})
		set.BuildingAtten = append(set.BuildingAtten, bu.AttenuationDB)
		set.BuildingIDs = append(set.BuildingIDs, bu.ID)
	}
	return set
}

// Config bundles the propagation settings the enumerator itself needs
// (everything else is per-band and lives in package spectral).
type Config struct {
	GroundEnabled bool
	MaxDistance   float64
}

// Enumerate returns every valid candidate path between src and rcv. It
// applies §6's max-propagation-distance cull before any geometry work:
// pairs beyond MaxDistance enumerate zero paths.
func Enumerate(src, rcv geom.Point3, obs ObstacleSet, cfg Config) []Path {
	if cfg.MaxDistance > 0 && geom.Dist2(src.To2(), rcv.To2()) > cfg.MaxDistance {
		return nil
	}

	var out []Path
	if p, ok := direct(src, rcv, obs); ok {
		out = append(out, p)
	}
	if cfg.GroundEnabled {
		if p, ok := ground(src, rcv, obs); ok {
			out = append(out, p)
		}
	}
	out = append(out, barrierDiffractions(src, rcv, obs)...)
	out = append(out, buildingDiffractions(src, rcv, obs)...)
	out = append(out, wallReflections(src, rcv, obs)...)
	return out
}

func direct(src, rcv geom.Point3, obs ObstacleSet) (Path, bool) {
	if blocked2D(src.To2(), rcv.To2(), obs.BarrierSegs, -1) {
		return Path{}, false
	}
	if blocked, _ := geom.FirstBlockingBuilding(src, rcv, obs.Buildings); blocked {
		return Path{}, false
	}
	d := geom.Dist3(src, rcv)
	return Path{
		Kind:          Direct,
		LevelDistance: d,
		PhaseDistance: d,
		Segments:      []geom.Point3{src, rcv},
	}, true
}

func blocked2D(a, b geom.Point2, segs [][2]geom.Point2, exclude int) bool {
	for i, s := range segs {
		if i == exclude {
			continue
		}
		if _, ok := geom.IntersectSegment(a, b, s[0], s[1]); ok {
			return true
		}
	}
	return false
}

func legBlockedByBuildings(a, b geom.Point3, buildings []geom.Building, exclude int) bool {
	for i, bu := range buildings {
		if i == exclude {
			continue
		}
		blocked, _ := geom.FirstBlockingBuilding(a, b, []geom.Building{bu})
		if blocked {
			return true
		}
	}
	return false
}

func legBlockedByBarriers(a, b geom.Point2, segs [][2]geom.Point2, exclude int) bool {
	return blocked2D(a, b, segs, exclude)
}
