package paths

import (
	"math"

	"github.com/KanuToCL/geonoise/internal/geom"
)

// wallAbsorptionDB is the fixed -20*log10(0.9) insertion loss from the
// wall's 10% absorption factor (§4.3 step 5).
var wallAbsorptionDB = -20 * math.Log10(0.9)

// wallReflections enumerates first-order image-source reflections off
// building walls (§4.3 step 5). Higher-order reflections and barrier
// reflections are out of scope (§1 Non-goals).
func wallReflections(src, rcv geom.Point3, obs ObstacleSet) []Path {
	var out []Path
	for bi, bu := range obs.Buildings {
		for _, edge := range geom.PolygonEdges(bu.Footprint) {
			a, b := edge[0], edge[1]
			imageS2 := geom.ReflectAcrossLine(src.To2(), a, b)

			cross, ok := geom.IntersectSegment(imageS2, rcv.To2(), a, b)
			if !ok {
				continue
			}

			total2D := geom.Dist2(imageS2, rcv.To2())
			if total2D < geom.Eps {
				continue
			}
			t := geom.Dist2(imageS2, cross) / total2D
			reflZ := src.Z + t*(rcv.Z-src.Z)

			if bu.Height <= reflZ {
				continue
			}

			reflPt := geom.Point3{X: cross.X, Y: cross.Y, Z: reflZ}
			image3 := geom.Point3{X: imageS2.X, Y: imageS2.Y, Z: src.Z}
			length := geom.Dist3(image3, rcv)

			if blocked2D(src.To2(), cross, obs.BarrierSegs, -1) ||
				blocked2D(cross, rcv.To2(), obs.BarrierSegs, -1) {
				continue
			}
			if legBlockedByBuildings(src, reflPt, obs.Buildings, bi) ||
				legBlockedByBuildings(reflPt, rcv, obs.Buildings, bi) {
				continue
			}

			out = append(out, Path{
				Kind:              WallReflection,
				LevelDistance:     length,
				PhaseDistance:     length,
				FixedExtraLevelDB: wallAbsorptionDB + obs.BuildingAtten[bi],
				FixedExtraPhase:   math.Pi,
				ObstacleID:        obs.BuildingIDs[bi],
				Segments:          []geom.Point3{src, reflPt, rcv},
			})
		}
	}
	return out
}
