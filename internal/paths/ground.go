package paths

import "github.com/KanuToCL/geonoise/internal/geom"

// ground enumerates the specular ground-reflection candidate (§4.3
// step 2). It is skipped -- silently, no warning -- when either height
// is zero, per the open question in §9.
func ground(src, rcv geom.Point3, obs ObstacleSet) (Path, bool) {
	hs, hr := src.Z, rcv.Z
	if hs <= 0 || hr <= 0 {
		return Path{}, false
	}

	d := geom.Dist2(src.To2(), rcv.To2())
	r1, r2, _ := geom.GroundReflectionGeometry(d, hs, hr)

	t := hs / (hs + hr)
	reflPt := geom.Point3{
		X: src.X + t*(rcv.X-src.X),
		Y: src.Y + t*(rcv.Y-src.Y),
		Z: 0,
	}

	if blocked2D(src.To2(), reflPt.To2(), obs.BarrierSegs, -1) ||
		blocked2D(reflPt.To2(), rcv.To2(), obs.BarrierSegs, -1) {
		return Path{}, false
	}
	if legBlockedByBuildings(src, reflPt, obs.Buildings, -1) ||
		legBlockedByBuildings(reflPt, rcv, obs.Buildings, -1) {
		return Path{}, false
	}

	return Path{
		Kind:          Ground,
		LevelDistance: r1,
		PhaseDistance: r2,
		R1:            r1,
		R2:            r2,
		Segments:      []geom.Point3{src, reflPt, rcv},
	}, true
}
