package grid

import "testing"

func TestComputeLaysOutExpectedDimensions(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}
	result := Compute(bounds, 5, 1.5, func(p Point) float64 { return p.X + p.Y }, Sequential{})

	if result.Cols != 3 {
		t.Errorf("Cols = %d, want 3", result.Cols)
	}
	if result.Rows != 5 {
		t.Errorf("Rows = %d, want 5", result.Rows)
	}
	if len(result.Values) != result.Cols*result.Rows {
		t.Errorf("len(Values) = %d, want %d", len(result.Values), result.Cols*result.Rows)
	}
}

func TestComputeMinMax(t *testing.T) {
	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	result := Compute(bounds, 10, 0, func(p Point) float64 { return p.X + p.Y }, Sequential{})
	if result.Min != 0 {
		t.Errorf("Min = %v, want 0", result.Min)
	}
	if result.Max != 20 {
		t.Errorf("Max = %v, want 20", result.Max)
	}
}

func TestComputeDegenerateBoundsStillYieldsOnePoint(t *testing.T) {
	bounds := Bounds{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}
	result := Compute(bounds, 1, 0, func(p Point) float64 { return 1 }, Sequential{})
	if result.Cols != 1 || result.Rows != 1 {
		t.Errorf("Cols=%d Rows=%d, want 1,1", result.Cols, result.Rows)
	}
}
