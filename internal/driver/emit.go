package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cdl/internal/codegen"
	"cdl/internal/project"
	"cdl/internal/trace"
)

// Output is the generated VHDL of one component.
type Output struct {
	Name   string
	Source string // path of the .cdl file
	VHDL   string
	Cached bool
	Key    project.Digest
}

// Emit generates VHDL for every healthy component of a. Components are
// handled wave by wave (sema batches) with one Generator per worker; a
// failure drops only that component. Outputs follow the check order.
func Emit(ctx context.Context, a *Analysis, opts Options) ([]Output, error) {
	if a.Sema == nil {
		return nil, nil
	}
	timer := opts.Timer
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "emit", trace.ParentSpan(ctx))
	var phase int
	if timer != nil {
		phase = timer.Begin("emit")
	}

	indent := opts.IndentWidth
	if indent == 0 {
		indent = 4
	}
	keys := a.ComputeUnitHashes(indent)

	var (
		mu      sync.Mutex
		outputs = make(map[string]Output)
		errs    = make(map[string]error)
		hits    int
	)
	pool := sync.Pool{New: func() any {
		return codegen.New(a.Registry, codegen.Options{Reporter: a.reporter, IndentWidth: indent})
	}}

	for _, batch := range a.Sema.Batches() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(1, min(opts.jobs(), len(batch))))
		for _, name := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cs := trace.Begin(tracer, trace.ScopeComponent, "emit:"+name, span.ID())
				start := time.Now()
				opts.notify(Event{Component: name, Phase: PhaseEmit})
				out, err := a.emitOne(name, keys[name], opts.Cache, &pool)
				elapsed := time.Since(start)
				cs.WithExtra("cached", strconv.FormatBool(out.Cached)).End("")
				opts.notify(Event{Component: name, Phase: PhaseEmit, Done: true, Cached: out.Cached, Err: err, Elapsed: elapsed})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs[name] = err
					return nil
				}
				if out.Cached {
					hits++
				}
				outputs[name] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			span.End("cancelled")
			return nil, err
		}
	}

	result := make([]Output, 0, len(outputs))
	var all []error
	for _, name := range a.Sema.Order() {
		if out, ok := outputs[name]; ok {
			result = append(result, out)
		}
		if err, ok := errs[name]; ok {
			a.fail(name, err)
			all = append(all, err)
		}
	}
	note := fmt.Sprintf("%d units, %d cached", len(result), hits)
	span.End(note)
	if timer != nil {
		timer.End(phase, note)
	}
	return result, errors.Join(all...)
}

func (a *Analysis) emitOne(name string, key project.Digest, cache *DiskCache, pool *sync.Pool) (Output, error) {
	u, _ := a.Registry.Get(name)
	out := Output{Name: name, Key: key}
	if c, ok := a.Chunk(name); ok {
		out.Source = c.Path
	}
	// ошибки кэша не фатальны: просто генерируем заново
	if cached, ok, err := cache.Get(key); err == nil && ok {
		out.VHDL = cached.VHDL
		out.Cached = true
		return out, nil
	}

	gen := pool.Get().(*codegen.Generator)
	defer pool.Put(gen)
	vhdl, err := gen.Emit(u)
	if err != nil {
		return out, err
	}
	out.VHDL = vhdl
	_ = cache.Put(key, &CachedUnit{Name: name, Source: out.Source, VHDL: vhdl})
	return out, nil
}

// Build is Analyze followed by Emit.
func Build(ctx context.Context, paths []string, opts Options) (*Analysis, []Output, error) {
	a, err := Analyze(ctx, paths, opts)
	if a == nil || a.Sema == nil {
		return a, nil, err
	}
	outs, emitErr := Emit(ctx, a, opts)
	return a, outs, errors.Join(err, emitErr)
}
