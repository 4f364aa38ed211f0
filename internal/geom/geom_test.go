package geom

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestDist2Dist3(t *testing.T) {
	a := Point2{0, 0}
	b := Point2{3, 4}
	approxEqual(t, Dist2(a, b), 5, 1e-9)

	a3 := Point3{0, 0, 0}
	b3 := Point3{3, 4, 12}
	approxEqual(t, Dist3(a3, b3), 13, 1e-9)
}

func TestIntersectSegmentCrossing(t *testing.T) {
	p, ok := IntersectSegment(Point2{0, 0}, Point2{10, 10}, Point2{0, 10}, Point2{10, 0})
	if !ok {
		t.Fatal("expected an intersection")
	}
	approxEqual(t, p.X, 5, 1e-6)
	approxEqual(t, p.Y, 5, 1e-6)
}

func TestIntersectSegmentParallelNoHit(t *testing.T) {
	_, ok := IntersectSegment(Point2{0, 0}, Point2{10, 0}, Point2{0, 1}, Point2{10, 1})
	if ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestIntersectSegmentOutsideRange(t *testing.T) {
	_, ok := IntersectSegment(Point2{0, 0}, Point2{1, 1}, Point2{5, 0}, Point2{5, 10})
	if ok {
		t.Error("segments that don't overlap in range should not intersect")
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := []Point2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(Point2{5, 5}, square) {
		t.Error("centre of square should be inside")
	}
	if PointInPolygon(Point2{15, 5}, square) {
		t.Error("point outside square reported as inside")
	}
}

func TestSignedAreaAndEnsureCCW(t *testing.T) {
	ccw := []Point2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if SignedArea(ccw) <= 0 {
		t.Error("expected positive signed area for CCW polygon")
	}
	cw := []Point2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if SignedArea(cw) >= 0 {
		t.Error("expected negative signed area for CW polygon")
	}
	fixed := EnsureCCW(cw)
	if SignedArea(fixed) <= 0 {
		t.Error("EnsureCCW did not fix winding direction")
	}
}

func TestFirstBlockingBuildingBlocksTallBuilding(t *testing.T) {
	building := Building{
		Footprint: []Point2{{4, -5}, {6, -5}, {6, 5}, {4, 5}},
		Height:    20,
	}
	src := Point3{X: 0, Y: 0, Z: 1.5}
	dst := Point3{X: 10, Y: 0, Z: 1.5}

	blocked, result := FirstBlockingBuilding(src, dst, []Building{building})
	if !blocked {
		t.Fatal("expected the tall building to block line of sight")
	}
	if result.BuildingIndex != 0 {
		t.Errorf("BuildingIndex = %d, want 0", result.BuildingIndex)
	}
}

func TestFirstBlockingBuildingShortBuildingDoesNotBlock(t *testing.T) {
	building := Building{
		Footprint: []Point2{{4, -5}, {6, -5}, {6, 5}, {4, 5}},
		Height:    0.5,
	}
	src := Point3{X: 0, Y: 0, Z: 1.5}
	dst := Point3{X: 10, Y: 0, Z: 1.5}

	blocked, _ := FirstBlockingBuilding(src, dst, []Building{building})
	if blocked {
		t.Error("short building should not block line of sight")
	}
}

func TestAllBlockingBuildingsOrderedByDistance(t *testing.T) {
	near := Building{Footprint: []Point2{{2, -5}, {3, -5}, {3, 5}, {2, 5}}, Height: 20}
	far := Building{Footprint: []Point2{{7, -5}, {8, -5}, {8, 5}, {7, 5}}, Height: 20}
	src := Point3{X: 0, Y: 0, Z: 1.5}
	dst := Point3{X: 10, Y: 0, Z: 1.5}

	all := AllBlockingBuildings(src, dst, []Building{far, near})
	if len(all) != 2 {
		t.Fatalf("expected 2 blocking buildings, got %d", len(all))
	}
	if all[0].EntryDist > all[1].EntryDist {
		t.Error("expected buildings ordered by increasing entry distance")
	}
}

func TestGroundReflectionGeometrySymmetric(t *testing.T) {
	r1, r2, x := GroundReflectionGeometry(10, 2, 2)
	approxEqual(t, r1, 10, 1e-9)
	approxEqual(t, r2, math.Sqrt(10*10+4*4), 1e-9)
	approxEqual(t, x, 5, 1e-9)
}

func TestGroundReflectionGeometryZeroHeights(t *testing.T) {
	_, _, x := GroundReflectionGeometry(10, 0, 0)
	if x != 0 {
		t.Errorf("xReflect with hs=hr=0 should be 0, got %v", x)
	}
}

func TestReflectAcrossLine(t *testing.T) {
	// reflecting (0,5) across the x-axis should give (0,-5)
	got := ReflectAcrossLine(Point2{0, 5}, Point2{-1, 0}, Point2{1, 0})
	approxEqual(t, got.X, 0, 1e-9)
	approxEqual(t, got.Y, -5, 1e-9)
}

func TestSilhouetteVerticesFindsCorners(t *testing.T) {
	square := []Point2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	viewer := Point2{-20, 5}
	sv := SilhouetteVertices(viewer, square)
	if len(sv) == 0 {
		t.Error("expected at least one silhouette vertex for an external viewpoint")
	}
}
