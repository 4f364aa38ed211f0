// Package request implements the request pipeline's staleness tracking
// and worker-pool fan-out (§4.6, §5).
package request

import "sync"

// Tracker maps a request id to its latest submitted sequence number,
// the "only process-wide mutable state" named in §5. It is guarded by
// a mutex rather than an atomic map, the way the teacher guards its
// shared index state in file.go with a plain sync.Mutex -- the id
// cardinality here is bounded by caller usage, not hot-path traffic.
type Tracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[string]uint64)}
}

// Submit increments and returns the new sequence for id. An empty id
// is uncancellable (§5: "requests that do not supply an id are
// uncancellable") and always returns sequence 0.
func (t *Tracker) Submit(id string) uint64 {
	if id == "" {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[id]++
	return t.latest[id]
}

// Current reports whether seq is still the latest sequence submitted
// for id -- the check a job makes at each suspension boundary (§5).
// An empty id is always current.
func (t *Tracker) Current(id string, seq uint64) bool {
	if id == "" {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[id] == seq
}
