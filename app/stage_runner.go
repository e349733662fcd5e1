package app

import (
	"time"

	"pricehypo/domain/stage"
	"pricehypo/internal"
)

// StageRunner executes pipeline stages in order and records how long each took
type StageRunner struct {
	logger  *internal.Logger
	timings map[stage.StageName]time.Duration
}

// NewStageRunner creates a stage runner for a single run
func NewStageRunner(logger *internal.Logger) *StageRunner {
	return &StageRunner{
		logger:  logger,
		timings: make(map[stage.StageName]time.Duration, len(stage.Plan)),
	}
}

// Run executes fn as the named stage. Errors are returned untouched.
func (r *StageRunner) Run(name stage.StageName, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.timings[name] = elapsed
	if err != nil {
		r.logger.Debug("stage %s failed after %.2fms: %v", name, float64(elapsed.Nanoseconds())/1e6, err)
		return err
	}
	r.logger.Debug("stage %s done in %.2fms", name, float64(elapsed.Nanoseconds())/1e6)
	return nil
}

// Completed lists the stages that ran, in plan order
func (r *StageRunner) Completed() []stage.StageName {
	var out []stage.StageName
	for _, name := range stage.Plan {
		if _, ok := r.timings[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
