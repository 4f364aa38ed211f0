package paths

import (
	"testing"

	"github.com/KanuToCL/geonoise/internal/geom"
	"github.com/KanuToCL/geonoise/internal/scene"
)

func TestEnumerateDirectOnlyWhenUnobstructed(t *testing.T) {
	src := geom.Point3{X: 0, Y: 0, Z: 1.5}
	rcv := geom.Point3{X: 50, Y: 0, Z: 1.5}

	out := Enumerate(src, rcv, ObstacleSet{}, Config{})
	if len(out) != 1 {
		t.Fatalf("expected exactly one candidate path, got %d", len(out))
	}
	if out[0].Kind != Direct {
		t.Errorf("Kind = %v, want Direct", out[0].Kind)
	}
}

func TestEnumerateIncludesGroundWhenEnabled(t *testing.T) {
	src := geom.Point3{X: 0, Y: 0, Z: 1.5}
	rcv := geom.Point3{X: 50, Y: 0, Z: 1.5}

	out := Enumerate(src, rcv, ObstacleSet{}, Config{GroundEnabled: true})
	var sawGround bool
	for _, p := range out {
		if p.Kind == Ground {
			sawGround = true
			if p.R2 <= p.R1 {
				t.Errorf("expected image-source distance r2 (%v) > direct r1 (%v)", p.R2, p.R1)
			}
		}
	}
	if !sawGround {
		t.Error("expected a ground-reflection candidate when GroundEnabled is true")
	}
}

func TestEnumerateSkipsGroundAtZeroHeight(t *testing.T) {
	src := geom.Point3{X: 0, Y: 0, Z: 0}
	rcv := geom.Point3{X: 50, Y: 0, Z: 1.5}

	out := Enumerate(src, rcv, ObstacleSet{}, Config{GroundEnabled: true})
	for _, p := range out {
		if p.Kind == Ground {
			t.Error("expected no ground path when source height is 0")
		}
	}
}

func TestEnumerateBarrierBlocksDirectAndAddsDiffraction(t *testing.T) {
	src := geom.Point3{X: 0, Y: 0, Z: 1.5}
	rcv := geom.Point3{X: 20, Y: 0, Z: 1.5}
	obs := ObstacleSet{
		BarrierSegs:    [][2]geom.Point2{{{X: 10, Y: -5}, {X: 10, Y: 5}}},
		BarrierHeights: []float64{3},
		BarrierGround:  []float64{0},
		BarrierAtten:   []float64{0},
		BarrierSideOn:  []bool{false},
		BarrierIDs:     []string{"b1"},
	}

	out := Enumerate(src, rcv, obs, Config{})

	var sawDirect, sawDiffraction bool
	for _, p := range out {
		switch p.Kind {
		case Direct:
			sawDirect = true
		case BarrierDiff:
			sawDiffraction = true
			if p.Sub != SubOverTop {
				t.Errorf("expected an over-top diffraction path, got sub=%v", p.Sub)
			}
			if p.DeltaExcess <= 0 {
				t.Errorf("expected positive path-length excess, got %v", p.DeltaExcess)
			}
		}
	}
	if sawDirect {
		t.Error("direct path should be blocked by the barrier")
	}
	if !sawDiffraction {
		t.Error("expected a barrier-diffraction path when the direct path is blocked")
	}
}

func TestEnumerateMaxDistanceCull(t *testing.T) {
	src := geom.Point3{X: 0, Y: 0, Z: 1.5}
	rcv := geom.Point3{X: 1000, Y: 0, Z: 1.5}

	out := Enumerate(src, rcv, ObstacleSet{}, Config{MaxDistance: 100})
	if len(out) != 0 {
		t.Errorf("expected no candidate paths beyond max distance, got %d", len(out))
	}
}

func TestBuildObstacleSetEmptySceneYieldsEmptySet(t *testing.T) {
	sc := &scene.Scene{}
	set := BuildObstacleSet(sc, scene.SideDiffractionOff)
	if len(set.BarrierSegs) != 0 || len(set.Buildings) != 0 {
		t.Error("expected an empty obstacle set for a scene with no obstacles")
	}
}
