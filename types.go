// Package geonoise is the coherent spectral outdoor-sound-propagation
// engine: a pure function of an immutable scene and a list of query
// points, returning per-query 9-band spectra plus optional path
// diagnostics (§2).
package geonoise

import (
	"github.com/KanuToCL/geonoise/internal/scene"
	"github.com/KanuToCL/geonoise/internal/spectral"
)

// ComputeKind selects which of the three compute request shapes (§6)
// a ComputeRequest carries.
type ComputeKind string

const (
	KindReceivers ComputeKind = "receivers"
	KindPanel     ComputeKind = "panel"
	KindGrid      ComputeKind = "grid"
)

// ComputeRequest is the union of the three named compute kinds (§6);
// only the fields relevant to Kind need be set.
type ComputeRequest struct {
	Kind      ComputeKind               `json:"kind"`
	Scene     *scene.Scene              `json:"scene"`
	Config    *scene.PropagationConfig  `json:"config,omitempty"`
	RequestID string                    `json:"request_id,omitempty"`
	PanelID   string                    `json:"panelId,omitempty"`
	Grid      *scene.GridSpec           `json:"gridConfig,omitempty"`
}

// Timings reports the three named phase durations plus their sum, in
// milliseconds (§4.6).
type Timings struct {
	SetupMs   float64 `json:"setupMs"`
	ComputeMs float64 `json:"computeMs"`
	TransferMs float64 `json:"transferMs"`
	TotalMs   float64 `json:"totalMs"`
}

// ReceiverResult is one receiver's computed spectrum (§6 "receivers").
type ReceiverResult struct {
	ID       string     `json:"id"`
	LAeq     float64    `json:"LAeq"`
	Spectrum [9]float64 `json:"spectrum"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Z        float64    `json:"z"`
}

// PanelSample is one sampled point of a panel compute (§6 "panel").
type PanelSample struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	LAeq float64 `json:"LAeq"`
}

// PanelStats summarises a panel's sampled LAeq distribution.
type PanelStats struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Avg         float64 `json:"avg"`
	P95         float64 `json:"p95"`
	SampleCount int     `json:"sampleCount"`
}

// ComputeResponse is the union response shape; only the fields for the
// request's Kind are populated.
type ComputeResponse struct {
	// receivers
	Receivers []ReceiverResult `json:"receivers,omitempty"`

	// panel
	PanelID string        `json:"panelId,omitempty"`
	Samples []PanelSample `json:"samples,omitempty"`
	Stats   *PanelStats   `json:"stats,omitempty"`

	// grid
	Bounds     *scene.GridBounds `json:"bounds,omitempty"`
	Resolution float64           `json:"resolution,omitempty"`
	Elevation  float64           `json:"elevation,omitempty"`
	Cols, Rows int               `json:"cols,omitempty"`
	Values     []float64         `json:"values,omitempty"`
	Min, Max   float64           `json:"min,omitempty"`

	// common to every kind
	BackendID    string             `json:"backendId"`
	Timings      Timings            `json:"timings"`
	Warnings     []spectral.Warning `json:"warnings,omitempty"`
	ConfigDigest string             `json:"configDigest,omitempty"`
}
