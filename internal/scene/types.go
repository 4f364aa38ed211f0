// Package scene defines the engine's data model (§3) and validates a
// scene document against its schema and invariants before it reaches
// the path enumerator.
package scene

import "github.com/KanuToCL/geonoise/internal/geom"

// SchemaVersion is the current scene document schema version this
// engine understands (major.minor).
const SchemaVersion = "1.0"

// Point3 is a position in the scene's local ENU frame. X and Y carry no
// "required" tag: the origin (0,0) is a legitimate position, and
// validator's "required" treats a float64 zero as absent.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z" validate:"gte=0"`
}

func (p Point3) toGeom() geom.Point3 { return geom.Point3{X: p.X, Y: p.Y, Z: p.Z} }

// Point2 is a horizontal-plane position.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2) toGeom() geom.Point2 { return geom.Point2{X: p.X, Y: p.Y} }

// LatLon is a geographic coordinate pair. No "required" validation tag:
// 0 is a legitimate latitude (equator) or longitude (prime meridian),
// and go-playground/validator's "required" rejects a float64 zero value
// as if it were absent.
type LatLon struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Origin anchors the scene's ENU frame (§3).
type Origin struct {
	LatLon   LatLon  `json:"latLon" validate:"required"`
	Altitude float64 `json:"altitude"`
}

// Spectrum is a 9-band dB vector, indexed in Bands order (§3).
type Spectrum [9]float64

// Source is a point emitter with a 9-band power spectrum.
type Source struct {
	ID       string   `json:"id" validate:"required"`
	Position Point3   `json:"position" validate:"required"`
	Spectrum Spectrum `json:"spectrum" validate:"required"`
	GainDB   float64  `json:"gainDb"`
	Enabled  bool     `json:"enabled"`
	Solo     bool     `json:"solo"`
	Mute     bool     `json:"mute"`
}

// Receiver is a point probe.
type Receiver struct {
	ID       string `json:"id" validate:"required"`
	Position Point3 `json:"position" validate:"required"`
	Enabled  bool   `json:"enabled"`
}

// Panel is a polygonal listening area sampled on a grid.
type Panel struct {
	ID        string    `json:"id" validate:"required"`
	Vertices  []Point2  `json:"vertices" validate:"required,min=3"`
	Elevation float64   `json:"elevation"`
	PointCap  int       `json:"pointCap" validate:"gte=0"`
}

// ObstacleKind distinguishes barrier from building obstacles.
type ObstacleKind string

const (
	KindBarrier  ObstacleKind = "barrier"
	KindBuilding ObstacleKind = "building"
)

// Obstacle is either a thin barrier (2 endpoints + height) or a building
// (polygon footprint + height), per §3.
type Obstacle struct {
	ID              string       `json:"id" validate:"required"`
	Kind            ObstacleKind `json:"type" validate:"required,oneof=barrier building"`
	Enabled         bool         `json:"enabled"`
	AttenuationDB   float64      `json:"attenuationDb"`
	Height          float64      `json:"height" validate:"gt=0"`
	P1              Point2       `json:"p1"`
	P2              Point2       `json:"p2"`
	GroundElevation float64      `json:"groundElevation"`
	Footprint       []Point2     `json:"footprint"`
}

// IsBarrier reports whether the obstacle is a barrier.
func (o Obstacle) IsBarrier() bool { return o.Kind == KindBarrier }

// IsBuilding reports whether the obstacle is a building.
func (o Obstacle) IsBuilding() bool { return o.Kind == KindBuilding }

// AtmosphericModel selects the absorption formula.
type AtmosphericModel string

// GroundModel selects the tabulated-legacy or impedance-based coherent
// ground reflection model.
type GroundModel string

const (
	GroundModelLegacy       GroundModel = "legacy"
	GroundModelTwoRayPhasor GroundModel = "twoRayPhasor"
)

// SideDiffractionMode selects whether barrier side (around-end)
// diffraction paths are enumerated.
type SideDiffractionMode string

const (
	SideDiffractionOff  SideDiffractionMode = "off"
	SideDiffractionAuto SideDiffractionMode = "auto"
	SideDiffractionOn   SideDiffractionMode = "on"
)

// GroundConfig configures ground reflection (§3). MixedFactor is a
// *float64, not a float64: G=0 (fully hard ground within a "mixed"
// blend) is as legitimate a value as any other in [0,1], and a bare
// float64 can't distinguish that from "the caller didn't set it" --
// the same zero-value-as-absent trap LatLon.Lat/Lon and Point3.X/Y
// avoid above.
type GroundConfig struct {
	Enabled       bool        `json:"enabled"`
	Type          string      `json:"type" validate:"omitempty,oneof=hard soft mixed"`
	MixedFactor   *float64    `json:"mixedFactor" validate:"omitempty,gte=0,lte=1"`
	Interpolation string      `json:"interpolation" validate:"omitempty,oneof=iso9613 logarithmic"`
	Model         GroundModel `json:"model" validate:"omitempty,oneof=legacy twoRayPhasor"`
	ImpedanceModel string     `json:"impedanceModel" validate:"omitempty,oneof=delany-bazley miki auto"`
}

// AtmosphericConfig configures the absorption model (§3). TemperatureC
// and HumidityPct are *float64 for the same reason GroundConfig.
// MixedFactor is: 0C and 0% RH are physically ordinary scene
// conditions, not an unset field, so a bare float64 zero can't stand in
// for "not supplied" here any more than it can for SpeedOfSound below.
type AtmosphericConfig struct {
	Model        AtmosphericModel `json:"model" validate:"omitempty,oneof=none simple iso9613"`
	TemperatureC *float64         `json:"temperature"`
	HumidityPct  *float64         `json:"humidity"`
	PressureKPa  float64          `json:"pressure"`
}

// PropagationConfig applies to every path in one compute call (§3).
type PropagationConfig struct {
	Spreading              string             `json:"spreading" validate:"omitempty,oneof=spherical cylindrical"`
	Atmospheric            AtmosphericConfig  `json:"atmospheric"`
	Ground                 GroundConfig       `json:"ground"`
	BarrierSideDiffraction SideDiffractionMode `json:"barrierSideDiffraction" validate:"omitempty,oneof=off auto on"`
	SpeedOfSound           *float64           `json:"speedOfSound"`
	MaxPropagationDistance float64            `json:"maxPropagationDistance" validate:"gte=0"`
	CoherentSummation      bool               `json:"coherentSummation"`
}

// GridBounds is a rectangular extent in the local frame.
type GridBounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// GridSpec configures a grid compute request (§4.5, §6).
type GridSpec struct {
	Bounds     GridBounds `json:"bounds"`
	Resolution float64    `json:"resolution" validate:"gt=0"`
	Elevation  float64    `json:"elevation"`
	TargetBand *int       `json:"targetBand"`
	Weighting  string     `json:"weighting" validate:"omitempty,oneof=A C Z"`
}

// Scene is the immutable, validated scene document for one compute
// call (§3).
type Scene struct {
	Version   string     `json:"version" validate:"required"`
	Origin    Origin     `json:"origin" validate:"required"`
	Sources   []Source   `json:"sources"`
	Receivers []Receiver `json:"receivers"`
	Panels    []Panel    `json:"panels"`
	Obstacles []Obstacle `json:"obstacles"`
	Grid      *GridSpec  `json:"grid,omitempty"`
	Config    *PropagationConfig `json:"engineConfig,omitempty"`
}

// Barriers returns the enabled barrier obstacles.
func (s *Scene) Barriers() []Obstacle {
	var out []Obstacle
	for _, o := range s.Obstacles {
		if o.Enabled && o.IsBarrier() {
			out = append(out, o)
		}
	}
	return out
}

// Buildings returns the enabled building obstacles.
func (s *Scene) Buildings() []Obstacle {
	var out []Obstacle
	for _, o := range s.Obstacles {
		if o.Enabled && o.IsBuilding() {
			out = append(out, o)
		}
	}
	return out
}
