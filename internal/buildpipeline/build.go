package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cdl/internal/driver"
	"cdl/internal/observ"
	"cdl/internal/trace"
)

// Request describes one build.
type Request struct {
	Paths []string
	// OutDir receives <Component>.vhd files; empty means nothing is written.
	OutDir  string
	Options driver.Options
	Sink    ProgressSink
}

// Result holds everything a build produced, including partial output when
// some components failed.
type Result struct {
	Analysis *driver.Analysis
	Outputs  []driver.Output
	Written  []string
	Timings  Timings
	Timer    *observ.Timer
}

// Build analyzes the sources, emits VHDL for every healthy component and
// writes it to OutDir. Progress is streamed to req.Sink.
func Build(ctx context.Context, req Request) (Result, error) {
	opts := req.Options
	if opts.Timer == nil {
		opts.Timer = observ.NewTimer()
	}
	opts.Observer = chainObserver(opts.Observer, req.Sink)
	res := Result{Timer: opts.Timer}

	emit(req.Sink, Event{Stage: StageLoad, Status: StatusWorking})
	a, err := driver.Analyze(ctx, req.Paths, opts)
	res.Analysis = a
	if a == nil || a.Sema == nil {
		emit(req.Sink, Event{Stage: StageCheck, Status: StatusError, Err: err})
		res.Timings = timingsFrom(opts.Timer.Report())
		return res, err
	}

	emit(req.Sink, Event{Stage: StageEmit, Status: StatusWorking})
	outs, emitErr := driver.Emit(ctx, a, opts)
	res.Outputs = outs
	err = errors.Join(err, emitErr)
	if ctx.Err() != nil {
		res.Timings = timingsFrom(opts.Timer.Report())
		return res, err
	}

	if req.OutDir != "" {
		phase := opts.Timer.Begin("write")
		span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "write", trace.ParentSpan(ctx))
		emit(req.Sink, Event{Stage: StageWrite, Status: StatusWorking})
		written, writeErr := writeOutputs(req.OutDir, outs, req.Sink)
		res.Written = written
		err = errors.Join(err, writeErr)
		note := fmt.Sprintf("%d files", len(written))
		span.End(note)
		opts.Timer.End(phase, note)
	}

	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(req.Sink, Event{Stage: StageWrite, Status: status, Err: err})
	res.Timings = timingsFrom(opts.Timer.Report())
	return res, err
}

func writeOutputs(dir string, outs []driver.Output, sink ProgressSink) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	written := make([]string, 0, len(outs))
	var errs []error
	for _, out := range outs {
		start := time.Now()
		path := filepath.Join(dir, out.Name+".vhd")
		// #nosec G306 -- generated sources are meant to be world-readable
		if err := os.WriteFile(path, []byte(out.VHDL), 0o644); err != nil {
			err = fmt.Errorf("write %s: %w", path, err)
			errs = append(errs, err)
			emit(sink, Event{Component: out.Name, Stage: StageWrite, Status: StatusError, Err: err})
			continue
		}
		written = append(written, path)
		emit(sink, Event{Component: out.Name, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
	}
	return written, errors.Join(errs...)
}

// chainObserver forwards driver events as pipeline events.
func chainObserver(next driver.Observer, sink ProgressSink) driver.Observer {
	if sink == nil {
		return next
	}
	return func(ev driver.Event) {
		if next != nil {
			next(ev)
		}
		emit(sink, fromDriver(ev))
	}
}

func fromDriver(ev driver.Event) Event {
	out := Event{Component: ev.Component, Err: ev.Err, Elapsed: ev.Elapsed}
	switch ev.Phase {
	case driver.PhaseParse:
		out.Stage = StageParse
	case driver.PhaseCheck:
		out.Stage = StageCheck
	default:
		out.Stage = StageEmit
	}
	switch {
	case ev.Err != nil:
		out.Status = StatusError
	case ev.Cached:
		out.Status = StatusCached
	case ev.Done:
		out.Status = StatusDone
	default:
		out.Status = StatusWorking
	}
	return out
}

func timingsFrom(report observ.Report) Timings {
	var t Timings
	for _, p := range report.Phases {
		stage := Stage(p.Name)
		switch stage {
		case StageLoad, StageParse, StageCheck, StageEmit, StageWrite:
			t.Set(stage, time.Duration(p.DurationMS*float64(time.Millisecond)))
		}
	}
	return t
}
