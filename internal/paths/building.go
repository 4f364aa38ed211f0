package paths

import "github.com/KanuToCL/geonoise/internal/geom"

// buildingDiffractions enumerates, for every enabled building the
// direct segment crosses, an over-roof double-edge path and
// around-corner single-edge paths using the footprint's silhouette
// vertices (§4.3 step 4).
func buildingDiffractions(src, rcv geom.Point3, obs ObstacleSet) []Path {
	directLen := geom.Dist3(src, rcv)
	blocking := geom.AllBlockingBuildings(src, rcv, obs.Buildings)

	var out []Path
	for _, b := range blocking {
		height := obs.Buildings[b.BuildingIndex].Height
		bend1 := geom.Point3{X: b.Entry.X, Y: b.Entry.Y, Z: height}
		bend2 := geom.Point3{X: b.Exit.X, Y: b.Exit.Y, Z: height}

		length := geom.Dist3(src, bend1) + geom.Dist3(bend1, bend2) + geom.Dist3(bend2, rcv)
		delta := length - directLen
		if delta > 0 &&
			!blocked2D(src.To2(), bend1.To2(), obs.BarrierSegs, -1) &&
			!blocked2D(bend2.To2(), rcv.To2(), obs.BarrierSegs, -1) &&
			!legBlockedByBuildings(src, bend1, obs.Buildings, b.BuildingIndex) &&
			!legBlockedByBuildings(bend2, rcv, obs.Buildings, b.BuildingIndex) {
			out = append(out, Path{
				Kind:            BuildingDiff,
				Sub:             SubOverRoof,
				LevelDistance:   length,
				PhaseDistance:   length,
				Delta1:          delta / 2,
				Delta2:          delta / 2,
				NumEdges:        2,
				FixedExtraPhase: -2 * quarterPi,
				FixedExtraLevelDB: obs.BuildingAtten[b.BuildingIndex],
				ObstacleID:      obs.BuildingIDs[b.BuildingIndex],
				Segments:        []geom.Point3{src, bend1, bend2, rcv},
			})
		}

		footprint := obs.Buildings[b.BuildingIndex].Footprint
		silhouette := geom.SilhouetteVertices(src.To2(), footprint)
		for _, v := range silhouette {
			bend := bendAtHorizontalPoint(src, rcv, v)
			if p, ok := diffractionCandidate(src, rcv, bend, directLen, obs, b.BuildingIndex, -1, BuildingDiff); ok {
				p.Sub = SubAroundCorner
				p.ObstacleID = obs.BuildingIDs[b.BuildingIndex]
				p.FixedExtraLevelDB += obs.BuildingAtten[b.BuildingIndex]
				out = append(out, p)
			}
		}
	}
	return out
}
