// Package grid implements the grid/panel driver (§4.5): it lays out a
// row-major sample grid (or a polygon-masked panel) and evaluates the
// propagation engine at every point, fanning rows/tiles out through
// a caller-supplied parallel executor.
package grid

import "math"

// Bounds is a rectangular extent in the local frame.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Point is one evaluated grid cell.
type Point struct {
	X, Y, Z float64
}

// EvaluateFunc computes the weighted level at one point; the caller
// (package engine) is responsible for running the full path
// enumeration and spectral summation and for applying the requested
// band/weighting selection.
type EvaluateFunc func(p Point) float64

// Executor fans independent units of work out, e.g. backed by a pond
// worker pool (§5: "grid rows ... are independent and may be fanned
// out"). A sequential Executor is valid too.
type Executor interface {
	Run(n int, fn func(i int))
}

// Sequential is the trivial Executor, used by tests and by callers that
// don't want parallelism.
type Sequential struct{}

func (Sequential) Run(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Result is the computed raster (§4.5, §6 grid response).
type Result struct {
	Bounds     Bounds
	Resolution float64
	Elevation  float64
	Cols, Rows int
	Values     []float64
	Min, Max   float64
}

// Compute lays out cols = ceil((maxX-minX)/res)+1 by rows similarly,
// evaluates eval at each cell's centre, and fans row evaluation out
// through exec.
func Compute(bounds Bounds, resolution, elevation float64, eval EvaluateFunc, exec Executor) Result {
	cols := int(math.Ceil((bounds.MaxX-bounds.MinX)/resolution)) + 1
	rows := int(math.Ceil((bounds.MaxY-bounds.MinY)/resolution)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	values := make([]float64, cols*rows)

	exec.Run(rows, func(j int) {
		y := bounds.MinY + float64(j)*resolution
		base := j * cols
		for i := 0; i < cols; i++ {
			x := bounds.MinX + float64(i)*resolution
			values[base+i] = eval(Point{X: x, Y: y, Z: elevation})
		}
	})

	min, max := minMax(values)
	return Result{
		Bounds:     bounds,
		Resolution: resolution,
		Elevation:  elevation,
		Cols:       cols,
		Rows:       rows,
		Values:     values,
		Min:        min,
		Max:        max,
	}
}

func minMax(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
