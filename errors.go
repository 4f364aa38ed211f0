package geonoise

// Package-level sentinel errors for the public API, one per request-
// level failure kind named in §7 (InvalidScene, InvalidConfig, Stale,
// BackendUnavailable). Callers match with errors.Is, never by message,
// the way the teacher's errors.go is consumed throughout cmd/main.go.
//
// These are the same error values internal/errs defines; the public
// surface re-exports only the four kinds a caller needs to branch on,
// leaving the scene-validation specifics (duplicate id, degenerate
// polygon, ...) wrapped but unexported.

import "github.com/KanuToCL/geonoise/internal/errs"

var (
	ErrInvalidScene       = errs.ErrInvalidScene
	ErrInvalidConfig      = errs.ErrInvalidConfig
	ErrStale              = errs.ErrStale
	ErrBackendUnavailable = errs.ErrBackendUnavailable
)
