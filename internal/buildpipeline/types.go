package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads sources and splits them into components.
	StageLoad Stage = "load"
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageCheck resolves instances and orders components.
	StageCheck Stage = "check"
	// StageEmit generates VHDL.
	StageEmit Stage = "emit"
	// StageWrite stores .vhd files.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the component is known but not started.
	StatusQueued Status = "queued"
	// StatusWorking indicates the component is in the stage.
	StatusWorking Status = "working"
	// StatusCached indicates the output came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the component is finished.
	StatusDone Status = "done"
	// StatusError indicates the component failed.
	StatusError Status = "error"
)

// Event reports progress for a component (or for the whole pipeline when
// Component is empty).
type Event struct {
	Component string
	Stage     Stage
	Status    Status
	Err       error
	Elapsed   time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
