// Package geom implements the 2D/3D geometry primitives the path
// enumerator builds on: segment intersection, point-in-polygon,
// building occlusion, and ground-reflection image geometry.
package geom

import "math"

// Eps is the tolerance below which a path is considered to graze rather
// than cross an obstacle (§4.3 "grazing" rule).
const Eps = 1e-10

// Point2 is a point in the horizontal plane.
type Point2 struct{ X, Y float64 }

// Point3 is a point in the ENU frame.
type Point3 struct{ X, Y, Z float64 }

func (p Point3) To2() Point2 { return Point2{p.X, p.Y} }

// Dist2 returns the horizontal (2D) distance between two points.
func Dist2(a, b Point2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// Dist3 returns the full 3D distance between two points.
func Dist3(a, b Point3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IntersectSegment returns the intersection point of segments A-B and
// C-D, or ok=false when they are parallel (within Eps) or the
// intersection falls outside either segment's [0,1] parametric range.
func IntersectSegment(a, b, c, d Point2) (p Point2, ok bool) {
	r := Point2{b.X - a.X, b.Y - a.Y}
	s := Point2{d.X - c.X, d.Y - c.Y}

	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < Eps {
		return Point2{}, false
	}

	acX, acY := c.X-a.X, c.Y-a.Y
	t := (acX*s.Y - acY*s.X) / denom
	u := (acX*r.Y - acY*r.X) / denom

	const margin = Eps
	if t < -margin || t > 1+margin || u < -margin || u > 1+margin {
		return Point2{}, false
	}

	return Point2{a.X + t*r.X, a.Y + t*r.Y}, true
}

// SegmentIntersectsAny reports whether seg crosses any segment in segs.
func SegmentIntersectsAny(a, b Point2, segs [][2]Point2) bool {
	for _, s := range segs {
		if _, ok := IntersectSegment(a, b, s[0], s[1]); ok {
			return true
		}
	}
	return false
}

// PointInPolygon performs a ray-casting test using a horizontal ray cast
// in +X. The polygon must be simple; boundary behaviour is deterministic
// (an edge touching the ray counts on one side only) but unspecified
// beyond that.
func PointInPolygon(p Point2, poly []Point2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonEdges returns the ordered edges of a (closed-implicit) polygon.
func PolygonEdges(poly []Point2) [][2]Point2 {
	n := len(poly)
	edges := make([][2]Point2, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]Point2{poly[i], poly[(i+1)%n]})
	}
	return edges
}

// SignedArea returns twice the signed area of poly; positive for
// counter-clockwise winding.
func SignedArea(poly []Point2) float64 {
	n := len(poly)
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return area
}

// EnsureCCW returns poly, reversed if necessary, so its winding is
// counter-clockwise. Scene ingestion normalises every footprint with
// this (§3 invariant).
func EnsureCCW(poly []Point2) []Point2 {
	if SignedArea(poly) >= 0 {
		return poly
	}
	out := make([]Point2, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// BlockingBuilding describes one building crossed by a source-receiver
// segment.
type BlockingBuilding struct {
	BuildingIndex int
	Entry, Exit   Point2
	EntryDist     float64
}

// Building is the minimal shape the occlusion tests need.
type Building struct {
	Footprint []Point2
	Height    float64
}

// FirstBlockingBuilding finds the nearest (by entry distance from src)
// building whose footprint the 2D projection of src->dst crosses, where
// the building's height at the crossing exceeds the straight-line
// interpolation of z between src and dst. Buildings shorter than the
// line-of-sight at the crossing do not block.
func FirstBlockingBuilding(src, dst Point3, buildings []Building) (blocked bool, result BlockingBuilding) {
	all := AllBlockingBuildings(src, dst, buildings)
	if len(all) == 0 {
		return false, BlockingBuilding{}
	}
	return true, all[0]
}

// AllBlockingBuildings returns every blocking building ordered by entry
// distance from src, as used by the building-diffraction enumerator.
func AllBlockingBuildings(src, dst Point3, buildings []Building) []BlockingBuilding {
	s2, d2 := src.To2(), dst.To2()
	total := Dist2(s2, d2)

	out := make([]BlockingBuilding, 0, len(buildings))
	for bi, b := range buildings {
		edges := PolygonEdges(b.Footprint)
		var hits []Point2
		for _, e := range edges {
			if pt, ok := IntersectSegment(s2, d2, e[0], e[1]); ok {
				hits = append(hits, pt)
			}
		}
		if len(hits) == 0 {
			continue
		}

		// order the crossing points by distance from src
		entry, exit := hits[0], hits[0]
		entryDist := Dist2(s2, hits[0])
		exitDist := entryDist
		for _, h := range hits[1:] {
			dd := Dist2(s2, h)
			if dd < entryDist {
				entry, entryDist = h, dd
			}
			if dd > exitDist {
				exit, exitDist = h, dd
			}
		}

		if total < Eps {
			continue
		}
		tEntry := entryDist / total
		tExit := exitDist / total
		zAtEntry := src.Z + tEntry*(dst.Z-src.Z)
		zAtExit := src.Z + tExit*(dst.Z-src.Z)
		losMax := math.Max(zAtEntry, zAtExit)

		if b.Height > losMax+Eps {
			out = append(out, BlockingBuilding{
				BuildingIndex: bi,
				Entry:         entry,
				Exit:          exit,
				EntryDist:     entryDist,
			})
		}
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].EntryDist < out[j-1].EntryDist; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// GroundReflectionGeometry returns the direct distance r1, the
// image-source distance r2, and the horizontal offset of the reflection
// point from the source, for a horizontal separation d and source/
// receiver heights hs, hr above a flat ground plane.
func GroundReflectionGeometry(d, hs, hr float64) (r1, r2, xReflect float64) {
	r1 = math.Sqrt(d*d + (hs-hr)*(hs-hr))
	r2 = math.Sqrt(d*d + (hs+hr)*(hs+hr))
	if hs+hr > 0 {
		xReflect = d * hs / (hs + hr)
	}
	return r1, r2, xReflect
}

// SilhouetteVertices returns the footprint vertices that form the
// silhouette of the polygon as seen from viewpoint p -- i.e. the
// vertices adjacent to an edge that changes orientation sign, used to
// find around-corner diffraction candidates.
func SilhouetteVertices(p Point2, poly []Point2) []Point2 {
	n := len(poly)
	if n < 3 {
		return nil
	}

	side := make([]float64, n)
	for i, v := range poly {
		side[i] = cross(v, poly[(i+1)%n], p)
	}

	var out []Point2
	for i := 0; i < n; i++ {
		prev := side[(i-1+n)%n]
		cur := side[i]
		if (prev > 0) != (cur > 0) {
			out = append(out, poly[i])
		}
	}
	return out
}

func cross(a, b, p Point2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// ReflectAcrossLine mirrors point p across the infinite line through a
// and b, used to build the image source for wall reflections.
func ReflectAcrossLine(p, a, b Point2) Point2 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < Eps {
		return p
	}
	apx, apy := p.X-a.X, p.Y-a.Y
	t := (apx*dx + apy*dy) / lenSq
	projX, projY := a.X+t*dx, a.Y+t*dy
	return Point2{2*projX - p.X, 2*projY - p.Y}
}
