// Package spectral turns the path enumerator's output into a per-band
// spectrum by building a pressure phasor for every valid path (§4.4)
// and summing them, then combines per-source spectra incoherently.
package spectral

// WarningKind classifies a non-fatal recovery, mirroring §7's
// conceptual error kinds that never abort a request.
type WarningKind string

const (
	NumericWarning     WarningKind = "NumericWarning"
	GeometryDegenerate WarningKind = "GeometryDegenerate"
)

// Warning is one recovered, non-fatal condition, attributable to a
// specific source/receiver/band so a caller can filter programmatically
// (§ SUPPLEMENTED FEATURES "Warnings taxonomy").
type Warning struct {
	Kind       WarningKind
	Message    string
	SourceID   string
	ReceiverID string
	Band       int
}
