// Package errs collects the engine's sentinel error kinds, grouped by
// subsystem, the way the teacher repo's errors.go does it: one
// package-level errors.New per condition instead of custom error struct
// types. Callers match with errors.Is against these, not against
// formatted messages.
package errs

import "errors"

// Request-level failures (§7): these abort the whole compute call.
var (
	ErrInvalidScene      = errors.New("invalid scene")
	ErrInvalidConfig     = errors.New("invalid propagation config")
	ErrStale             = errors.New("stale request")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Non-fatal conditions (§7): recovered locally, surfaced only in
// warnings[].
var (
	ErrNumericWarning    = errors.New("numeric warning")
	ErrGeometryDegenerate = errors.New("geometry degenerate")
	ErrSchemaVersion     = errors.New("schema version mismatch")
)

// Scene-validation specifics, wrapped under ErrInvalidScene.
var (
	ErrDuplicateID      = errors.New("duplicate id")
	ErrDegeneratePolygon = errors.New("degenerate or self-intersecting polygon")
	ErrNonFiniteSpectrum = errors.New("non-finite spectrum value")
	ErrBarrierZeroLength = errors.New("barrier endpoints coincide")
	ErrNegativeHeight   = errors.New("obstacle height must be positive")
	ErrNegativeZ        = errors.New("source/receiver z must be >= 0")
)
