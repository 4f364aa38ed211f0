package paths

import "github.com/KanuToCL/geonoise/internal/geom"

// barrierDiffractions enumerates, for every enabled barrier whose 2D
// extent crosses the direct segment, the over-top path and (when side
// diffraction is switched on for that barrier) the two around-end
// paths (§4.3 step 3). Each candidate validates its two half-paths
// against every *other* obstacle.
func barrierDiffractions(src, rcv geom.Point3, obs ObstacleSet) []Path {
	s2, r2 := src.To2(), rcv.To2()
	directLen := geom.Dist3(src, rcv)

	var out []Path
	for i, seg := range obs.BarrierSegs {
		crossing, ok := geom.IntersectSegment(s2, r2, seg[0], seg[1])
		if !ok {
			continue
		}

		top := geom.Point3{X: crossing.X, Y: crossing.Y, Z: obs.BarrierHeights[i]}
		if p, ok := diffractionCandidate(src, rcv, top, directLen, obs, -1, i, BarrierDiff); ok {
			p.Sub = SubOverTop
			p.ObstacleID = obs.BarrierIDs[i]
			p.FixedExtraLevelDB += obs.BarrierAtten[i]
			out = append(out, p)
		}

		if obs.BarrierSideOn[i] {
			for _, end := range [2]geom.Point2{seg[0], seg[1]} {
				bend := bendAtHorizontalPoint(src, rcv, end)
				if p, ok := diffractionCandidate(src, rcv, bend, directLen, obs, -1, i, BarrierDiff); ok {
					p.Sub = SubAroundEnd
					p.ObstacleID = obs.BarrierIDs[i]
					p.FixedExtraLevelDB += obs.BarrierAtten[i]
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// bendAtHorizontalPoint lifts a horizontal bend point to the z that
// linearly interpolates between src and rcv by horizontal-distance
// fraction, used for around-end and around-corner diffraction where the
// diffracting edge is vertical rather than a fixed barrier height.
func bendAtHorizontalPoint(src, rcv geom.Point3, p geom.Point2) geom.Point3 {
	dSrc := geom.Dist2(src.To2(), p)
	dRcv := geom.Dist2(p, rcv.To2())
	total := dSrc + dRcv
	t := 0.5
	if total > geom.Eps {
		t = dSrc / total
	}
	return geom.Point3{X: p.X, Y: p.Y, Z: src.Z + t*(rcv.Z-src.Z)}
}

// diffractionCandidate builds a single-edge diffraction Path bending
// through bend, dropping it when the excess path length is non-positive
// (§4.3: "diffraction paths that would reduce to the direct path ...
// are dropped") or when either half-path is blocked by an obstacle
// other than the one this diffraction is going around/over.
func diffractionCandidate(src, rcv, bend geom.Point3, directLen float64, obs ObstacleSet, excludeBuilding, excludeBarrier int, kind Kind) (Path, bool) {
	length := geom.Dist3(src, bend) + geom.Dist3(bend, rcv)
	delta := length - directLen
	if delta <= 0 {
		return Path{}, false
	}

	if blocked2D(src.To2(), bend.To2(), obs.BarrierSegs, excludeBarrier) ||
		blocked2D(bend.To2(), rcv.To2(), obs.BarrierSegs, excludeBarrier) {
		return Path{}, false
	}
	if legBlockedByBuildings(src, bend, obs.Buildings, excludeBuilding) ||
		legBlockedByBuildings(bend, rcv, obs.Buildings, excludeBuilding) {
		return Path{}, false
	}

	return Path{
		Kind:              kind,
		LevelDistance:     length,
		PhaseDistance:     length,
		DeltaExcess:       delta,
		NumEdges:          1,
		FixedExtraPhase:   -quarterPi,
		Segments:          []geom.Point3{src, bend, rcv},
	}, true
}

const quarterPi = 0.7853981633974483 // pi/4
