package grid

import (
	"math"

	"github.com/KanuToCL/geonoise/internal/geom"
)

// PanelResult is the computed sample set for a polygon panel (§4.5).
type PanelResult struct {
	Points   []Point
	Values   []float64
	Min, Max float64
}

// ComputePanel samples a polygon panel's bounding box at resolution,
// keeps only the points that fall inside the polygon, and evaluates
// each kept point. If the kept count exceeds pointCap, the sample is
// thinned to a uniform stride so panels with fine resolution or large
// area stay within the cap (§4.5: "the sample count is capped at the
// panel's pointCap, with uniform stride if necessary").
func ComputePanel(vertices []geom.Point2, resolution, elevation float64, pointCap int, eval EvaluateFunc, exec Executor) PanelResult {
	bounds := boundingBox(vertices)
	cols := int(math.Ceil((bounds.MaxX-bounds.MinX)/resolution)) + 1
	rows := int(math.Ceil((bounds.MaxY-bounds.MinY)/resolution)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	inside := make([]bool, cols*rows)
	points := make([]Point, cols*rows)
	exec.Run(rows, func(j int) {
		y := bounds.MinY + float64(j)*resolution
		base := j * cols
		for i := 0; i < cols; i++ {
			x := bounds.MinX + float64(i)*resolution
			pt := geom.Point2{X: x, Y: y}
			points[base+i] = Point{X: x, Y: y, Z: elevation}
			inside[base+i] = geom.PointInPolygon(pt, vertices)
		}
	})

	var keptIdx []int
	for i, in := range inside {
		if in {
			keptIdx = append(keptIdx, i)
		}
	}

	stride := 1
	if pointCap > 0 && len(keptIdx) > pointCap {
		stride = int(math.Ceil(float64(len(keptIdx)) / float64(pointCap)))
	}

	var kept []int
	for i := 0; i < len(keptIdx); i += stride {
		kept = append(kept, keptIdx[i])
	}

	result := PanelResult{
		Points: make([]Point, len(kept)),
		Values: make([]float64, len(kept)),
	}
	exec.Run(len(kept), func(i int) {
		idx := kept[i]
		result.Points[i] = points[idx]
		result.Values[i] = eval(points[idx])
	})

	result.Min, result.Max = minMax(result.Values)
	return result
}

func boundingBox(vertices []geom.Point2) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: vertices[0].X, MaxX: vertices[0].X, MinY: vertices[0].Y, MaxY: vertices[0].Y}
	for _, v := range vertices[1:] {
		if v.X < b.MinX {
			b.MinX = v.X
		}
		if v.X > b.MaxX {
			b.MaxX = v.X
		}
		if v.Y < b.MinY {
			b.MinY = v.Y
		}
		if v.Y > b.MaxY {
			b.MaxY = v.Y
		}
	}
	return b
}
