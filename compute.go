package geonoise

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KanuToCL/geonoise/internal/errs"
	"github.com/KanuToCL/geonoise/internal/geom"
	"github.com/KanuToCL/geonoise/internal/grid"
	"github.com/KanuToCL/geonoise/internal/request"
	"github.com/KanuToCL/geonoise/internal/scene"
	"github.com/KanuToCL/geonoise/internal/spectral"
	"github.com/KanuToCL/geonoise/internal/units"
)

// ComputeReceivers evaluates every enabled receiver in req.Scene against
// every active source (§6 "receivers"). It validates the scene, checks
// staleness at the one suspension boundary available before per-
// receiver work begins, and fans receivers out across a worker pool
// sized the way the teacher's convert_gsf_list sizes its conversion
// pool (§5: "per-source evaluations are independent and may be fanned
// out" -- the same applies per-receiver at this call's scope).
func (e *Engine) ComputeReceivers(ctx context.Context, req *ComputeRequest) (*ComputeResponse, error) {
	t0 := time.Now()
	seq := e.beginRequest(req.RequestID)

	if req.Scene == nil {
		return nil, fmt.Errorf("%w: scene is required", errs.ErrInvalidScene)
	}
	warnStrs, err := scene.Validate(req.Scene)
	if err != nil {
		return nil, err
	}
	rc := resolve(req.Scene, req.Config)
	tSetup := time.Since(t0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	sources := scene.ActiveSources(req.Scene.Sources)

	tCompute0 := time.Now()
	results := make([]ReceiverResult, len(req.Scene.Receivers))
	allWarnings := make([][]spectral.Warning, len(req.Scene.Receivers))

	pool := request.NewPool(ctx)
	defer pool.Stop()
	pool.Run(len(req.Scene.Receivers), func(i int) {
		rcv := req.Scene.Receivers[i]
		pos := geom.Point3{X: rcv.Position.X, Y: rcv.Position.Y, Z: rcv.Position.Z}
		spectrum, w := evaluateAt(sources, pos, rc, rcv.ID)
		results[i] = ReceiverResult{
			ID:       rcv.ID,
			LAeq:     units.OverallLevel(spectrum, units.WeightingA),
			Spectrum: spectrum,
			X:        rcv.Position.X,
			Y:        rcv.Position.Y,
			Z:        rcv.Position.Z,
		}
		allWarnings[i] = w
	})
	tCompute := time.Since(tCompute0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	tTransfer0 := time.Now()
	resp := &ComputeResponse{
		Receivers:    results,
		BackendID:    e.backendID,
		Warnings:     flattenWarnings(warnStrs, allWarnings),
		ConfigDigest: configDigest(rc.cfg),
	}
	resp.Timings = buildTimings(tSetup, tCompute, time.Since(tTransfer0))
	return resp, nil
}

// ComputePanel evaluates every sampled point of the named panel (§6
// "panel"), capping the sample count at the panel's pointCap via
// package grid's uniform-stride thinning.
func (e *Engine) ComputePanel(ctx context.Context, req *ComputeRequest) (*ComputeResponse, error) {
	t0 := time.Now()
	seq := e.beginRequest(req.RequestID)

	if req.Scene == nil {
		return nil, fmt.Errorf("%w: scene is required", errs.ErrInvalidScene)
	}
	warnStrs, err := scene.Validate(req.Scene)
	if err != nil {
		return nil, err
	}

	var panel *scene.Panel
	for i := range req.Scene.Panels {
		if req.Scene.Panels[i].ID == req.PanelID {
			panel = &req.Scene.Panels[i]
			break
		}
	}
	if panel == nil {
		return nil, fmt.Errorf("%w: panel %q not found", errs.ErrInvalidScene, req.PanelID)
	}

	rc := resolve(req.Scene, req.Config)
	sources := scene.ActiveSources(req.Scene.Sources)
	tSetup := time.Since(t0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	vertices := make([]geom.Point2, len(panel.Vertices))
	for i, v := range panel.Vertices {
		vertices[i] = geom.Point2{X: v.X, Y: v.Y}
	}

	var mu panelWarningSink
	pool := request.NewPool(ctx)
	defer pool.Stop()

	resolution := panelResolution(panel)
	tCompute0 := time.Now()
	result := grid.ComputePanel(vertices, resolution, panel.Elevation, panel.PointCap,
		func(p grid.Point) float64 {
			spectrum, w := evaluateAt(sources, geom.Point3{X: p.X, Y: p.Y, Z: p.Z}, rc, req.PanelID)
			mu.add(w)
			return units.OverallLevel(spectrum, units.WeightingA)
		}, pool)
	tCompute := time.Since(tCompute0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	tTransfer0 := time.Now()
	samples := make([]PanelSample, len(result.Points))
	for i, p := range result.Points {
		samples[i] = PanelSample{X: p.X, Y: p.Y, Z: p.Z, LAeq: result.Values[i]}
	}

	resp := &ComputeResponse{
		PanelID:      req.PanelID,
		Samples:      samples,
		Stats:        panelStats(result.Values),
		BackendID:    e.backendID,
		Warnings:     flattenWarnings(warnStrs, mu.warnings),
		ConfigDigest: configDigest(rc.cfg),
	}
	resp.Timings = buildTimings(tSetup, tCompute, time.Since(tTransfer0))
	return resp, nil
}

// panelResolution picks a sampling step fine enough that the panel's
// bounding box yields roughly pointCap candidate cells before the
// point-in-polygon mask and stride thinning of package grid take over.
// A panel with no pointCap falls back to a fixed 5m step.
func panelResolution(panel *scene.Panel) float64 {
	if panel.PointCap <= 0 {
		return 5.0
	}
	minX, minY, maxX, maxY := panel.Vertices[0].X, panel.Vertices[0].Y, panel.Vertices[0].X, panel.Vertices[0].Y
	for _, v := range panel.Vertices[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	area := math.Max(maxX-minX, 1) * math.Max(maxY-minY, 1)
	res := math.Sqrt(area / float64(panel.PointCap))
	if res < 0.5 {
		res = 0.5
	}
	return res
}

func panelStats(values []float64) *PanelStats {
	if len(values) == 0 {
		return &PanelStats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	p95Idx := int(math.Ceil(0.95*float64(len(sorted)))) - 1
	if p95Idx < 0 {
		p95Idx = 0
	}
	if p95Idx >= len(sorted) {
		p95Idx = len(sorted) - 1
	}
	return &PanelStats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Avg:         sum / float64(len(sorted)),
		P95:         sorted[p95Idx],
		SampleCount: len(sorted),
	}
}

// ComputeGrid lays out and evaluates a rectangular listening grid (§4.5,
// §6 "grid").
func (e *Engine) ComputeGrid(ctx context.Context, req *ComputeRequest) (*ComputeResponse, error) {
	t0 := time.Now()
	seq := e.beginRequest(req.RequestID)

	if req.Scene == nil || req.Grid == nil {
		return nil, fmt.Errorf("%w: scene and gridConfig are required", errs.ErrInvalidScene)
	}
	warnStrs, err := scene.Validate(req.Scene)
	if err != nil {
		return nil, err
	}

	rc := resolve(req.Scene, req.Config)
	sources := scene.ActiveSources(req.Scene.Sources)
	weighting := units.Weighting(req.Grid.Weighting)
	targetBand := req.Grid.TargetBand
	tSetup := time.Since(t0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	var mu panelWarningSink
	pool := request.NewPool(ctx)
	defer pool.Stop()

	bounds := grid.Bounds{
		MinX: req.Grid.Bounds.MinX, MinY: req.Grid.Bounds.MinY,
		MaxX: req.Grid.Bounds.MaxX, MaxY: req.Grid.Bounds.MaxY,
	}

	tCompute0 := time.Now()
	result := grid.Compute(bounds, req.Grid.Resolution, req.Grid.Elevation,
		func(p grid.Point) float64 {
			spectrum, w := evaluateAt(sources, geom.Point3{X: p.X, Y: p.Y, Z: p.Z}, rc, "")
			mu.add(w)
			if targetBand != nil {
				band := *targetBand
				if band < 0 || band > 8 {
					return units.FloorDB
				}
				return spectrum[band]
			}
			return units.OverallLevel(spectrum, weighting)
		}, pool)
	tCompute := time.Since(tCompute0)

	if err := e.checkStale(req.RequestID, seq); err != nil {
		return nil, err
	}

	tTransfer0 := time.Now()
	gb := scene.GridBounds{MinX: bounds.MinX, MinY: bounds.MinY, MaxX: bounds.MaxX, MaxY: bounds.MaxY}
	resp := &ComputeResponse{
		Bounds:       &gb,
		Resolution:   result.Resolution,
		Elevation:    result.Elevation,
		Cols:         result.Cols,
		Rows:         result.Rows,
		Values:       result.Values,
		Min:          result.Min,
		Max:          result.Max,
		BackendID:    e.backendID,
		Warnings:     flattenWarnings(warnStrs, mu.warnings),
		ConfigDigest: configDigest(rc.cfg),
	}
	resp.Timings = buildTimings(tSetup, tCompute, time.Since(tTransfer0))
	return resp, nil
}

// Probe evaluates a single point against an inline list of sources and
// walls (§6 "probe"), optionally tracing full per-path diagnostics
// (SUPPLEMENTED FEATURES "Probe endpoint path diagnostics"). A probe is
// a quick what-if tool fed ad hoc geometry rather than a vetted scene
// document, so it skips §3's schema/invariant validation: a malformed
// wall or spectrum never aborts the request, and a band that cannot be
// evaluated falls back to the floor in the band loop (§4.4). The probe
// response carries no warnings; any the band loop raises are discarded.
func (e *Engine) Probe(req *ProbeRequest) (*ProbeResponse, error) {
	cfg := scene.WithDefaults(req.Config)
	sc := &scene.Scene{
		Version:   scene.SchemaVersion,
		Sources:   req.Sources,
		Receivers: []scene.Receiver{{ID: req.ProbeID, Position: req.Position, Enabled: true}},
		Obstacles: probeObstacles(req.Walls),
		Config:    &cfg,
	}

	rc := resolve(sc, &cfg)
	sources := scene.ActiveSources(sc.Sources)
	rcvPos := geom.Point3{X: req.Position.X, Y: req.Position.Y, Z: req.Position.Z}

	spectrum, _ := evaluateAt(sources, rcvPos, rc, req.ProbeID)

	data := ProbeData{
		Frequencies: units.Bands,
		Magnitudes:  spectrum,
	}

	if req.IncludePathGeometry {
		traced, pairs, ghosts := traceProbePaths(sources, rcvPos, rc)
		data.TracedPaths = traced
		data.PhaseRelationships = pairs
		data.InterferenceDetails = InterferenceDetails{GhostCount: ghosts}
	}

	return &ProbeResponse{ProbeID: req.ProbeID, Data: data}, nil
}

// probeObstacles turns a probe's inline wall list into scene obstacles,
// each auto-assigned a stable diagnostic id via github.com/google/uuid
// since the probe request doesn't name its walls (§6 "probe" carries
// vertices/height only).
func probeObstacles(walls []ProbeWall) []scene.Obstacle {
	out := make([]scene.Obstacle, 0, len(walls))
	for _, w := range walls {
		o := scene.Obstacle{
			ID:      uuid.NewString(),
			Enabled: true,
			Height:  w.Height,
		}
		switch w.Type {
		case ProbeWallBarrier:
			o.Kind = scene.KindBarrier
			if len(w.Vertices) >= 2 {
				o.P1, o.P2 = w.Vertices[0], w.Vertices[1]
			}
		case ProbeWallBuilding:
			o.Kind = scene.KindBuilding
			o.Footprint = w.Vertices
		}
		out = append(out, o)
	}
	return out
}

func buildTimings(setup, compute, transfer time.Duration) Timings {
	t := Timings{
		SetupMs:    float64(setup.Microseconds()) / 1000.0,
		ComputeMs:  float64(compute.Microseconds()) / 1000.0,
		TransferMs: float64(transfer.Microseconds()) / 1000.0,
	}
	t.TotalMs = t.SetupMs + t.ComputeMs + t.TransferMs
	return t
}

// panelWarningSink collects per-point warning slices from concurrent
// grid/panel evaluations; Pool.Run already serialises each callback's
// completion through a WaitGroup but callbacks themselves run
// concurrently, so appends are guarded.
type panelWarningSink struct {
	mu       sync.Mutex
	warnings [][]spectral.Warning
}

func (s *panelWarningSink) add(w []spectral.Warning) {
	if len(w) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, w)
}

func flattenWarnings(schemaWarnings []string, perItem [][]spectral.Warning) []spectral.Warning {
	var out []spectral.Warning
	for _, s := range schemaWarnings {
		out = append(out, spectral.Warning{Kind: "SchemaVersionWarning", Message: s})
	}
	for _, w := range perItem {
		out = append(out, w...)
	}
	return out
}
