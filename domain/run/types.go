package run

import (
	"time"

	"pricehypo/domain/core"
	"pricehypo/domain/hypothesis"
)

// Record captures one pipeline invocation for batch and HTTP callers
type Record struct {
	ID          core.RunID         `json:"run_id"`
	Source      string             `json:"source"`
	StartedAt   core.Timestamp     `json:"started_at"`
	DurationMs  int64              `json:"duration_ms"`
	Fingerprint core.Hash          `json:"fingerprint"`
	Outcome     hypothesis.Outcome `json:"outcome"`
}

// NewRecord stamps an outcome with its run metadata
func NewRecord(id core.RunID, source string, started time.Time, elapsed time.Duration, outcome hypothesis.Outcome) Record {
	return Record{
		ID:          id,
		Source:      source,
		StartedAt:   core.NewTimestamp(started),
		DurationMs:  elapsed.Milliseconds(),
		Fingerprint: outcome.Fingerprint(),
		Outcome:     outcome,
	}
}
