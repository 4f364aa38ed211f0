package request

import "testing"

func TestTrackerSubmitIncrementsSequence(t *testing.T) {
	tr := NewTracker()
	first := tr.Submit("req-1")
	second := tr.Submit("req-1")
	if second <= first {
		t.Errorf("expected sequence to increase, got first=%d second=%d", first, second)
	}
}

func TestTrackerCurrentOnlyLatestSequenceIsCurrent(t *testing.T) {
	tr := NewTracker()
	first := tr.Submit("req-1")
	second := tr.Submit("req-1")

	if tr.Current("req-1", first) {
		t.Error("superseded sequence reported as current")
	}
	if !tr.Current("req-1", second) {
		t.Error("latest sequence reported as stale")
	}
}

func TestTrackerEmptyIDIsAlwaysCurrent(t *testing.T) {
	tr := NewTracker()
	seq := tr.Submit("")
	if seq != 0 {
		t.Errorf("Submit(\"\") = %d, want 0", seq)
	}
	if !tr.Current("", 12345) {
		t.Error("empty id should always be current, regardless of sequence")
	}
}

func TestTrackerIndependentIDs(t *testing.T) {
	tr := NewTracker()
	a := tr.Submit("a")
	b := tr.Submit("b")
	if !tr.Current("a", a) || !tr.Current("b", b) {
		t.Error("independent request ids should not interfere with each other's sequence")
	}
}
