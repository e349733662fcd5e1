package run

import (
	"errors"
	"testing"
	"time"

	"pricehypo/domain/core"
	"pricehypo/domain/hypothesis"
)

func TestNewRecord_Deterministic(t *testing.T) {
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	outcome := hypothesis.Outcome{TTest: hypothesis.NewTTestResult(-2.5, 0.03)}

	r1 := NewRecord(core.RunID("run-1"), "cars.csv", started, 1500*time.Millisecond, outcome)
	r2 := NewRecord(core.RunID("run-2"), "cars.csv", started, 20*time.Millisecond, outcome)

	if r1.Fingerprint != r2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", r1.Fingerprint, r2.Fingerprint)
	}
	if r1.DurationMs != 1500 {
		t.Errorf("DurationMs mismatch: %d", r1.DurationMs)
	}
	if r1.StartedAt.Time() != started {
		t.Errorf("StartedAt mismatch: %s", r1.StartedAt)
	}
}

func TestNewRecord_ErrorOutcome(t *testing.T) {
	failed := hypothesis.Failed(errors.New("missing HP"))
	ok := hypothesis.Outcome{TTest: hypothesis.NewTTestResult(-2.5, 0.03)}

	r1 := NewRecord(core.NewRunID(), "a.csv", time.Now(), 0, failed)
	r2 := NewRecord(core.NewRunID(), "a.csv", time.Now(), 0, ok)

	if r1.Fingerprint == r2.Fingerprint {
		t.Error("Expected error and success outcomes to fingerprint differently")
	}
	if r1.Outcome.OK() {
		t.Error("Expected failed outcome to carry its error")
	}
}
