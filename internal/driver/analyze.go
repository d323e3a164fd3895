package driver

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/observ"
	"cdl/internal/parser"
	"cdl/internal/sema"
	"cdl/internal/source"
	"cdl/internal/token"
	"cdl/internal/trace"
)

// Phase names a driver step reported to an Observer.
type Phase string

const (
	PhaseParse Phase = "parse"
	PhaseCheck Phase = "check"
	PhaseEmit  Phase = "emit"
)

// Event is one per-component progress notification.
type Event struct {
	Component string
	Phase     Phase
	Done      bool
	Cached    bool
	Err       error
	Elapsed   time.Duration
}

// Observer receives events from worker goroutines; it must be goroutine-safe.
type Observer func(Event)

type Options struct {
	// Jobs bounds parallel workers; 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Top is checked for existence and for the absence of generics.
	Top                 string
	KeepPlaceholderText bool
	IndentWidth         int
	// Cache is optional; nil disables it.
	Cache    *DiskCache
	Timer    *observ.Timer
	Observer Observer
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o Options) notify(ev Event) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}

// Analysis is everything known about a set of sources after parse and check.
type Analysis struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Chunks   []Chunk
	Registry *ast.Registry
	Sema     *sema.Result

	reporter diag.Reporter
	chunkOf  map[string]int   // component -> index in Chunks
	errs     map[string]error // component (or chunk label) -> first error
	order    []string         // labels of failed components in discovery order
}

// Err returns why component name was dropped, or nil.
func (a *Analysis) Err(name string) error {
	return a.errs[name]
}

// Failed lists components (or chunk labels) that did not survive analysis.
func (a *Analysis) Failed() []string {
	return append([]string(nil), a.order...)
}

// Chunk returns the source chunk component name was parsed from.
func (a *Analysis) Chunk(name string) (Chunk, bool) {
	i, ok := a.chunkOf[name]
	if !ok {
		return Chunk{}, false
	}
	return a.Chunks[i], true
}

func (a *Analysis) fail(name string, err error) {
	if _, dup := a.errs[name]; dup {
		return
	}
	a.errs[name] = err
	a.order = append(a.order, name)
}

// Error joins every per-component failure.
func (a *Analysis) Error() error {
	errs := make([]error, 0, len(a.order))
	for _, name := range a.order {
		errs = append(errs, a.errs[name])
	}
	return errors.Join(errs...)
}

// Analyze loads paths (files, or directories walked for *.cdl), parses every
// component in parallel and checks the component graph. A failing component
// only removes itself and its users; the returned Analysis is usable even
// when err != nil.
func Analyze(ctx context.Context, paths []string, opts Options) (*Analysis, error) {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	a := &Analysis{
		FileSet:  fileSet,
		Bag:      bag,
		Registry: ast.NewRegistry(),
		reporter: &diag.LockedReporter{Next: diag.BagReporter{Bag: bag}},
		chunkOf:  make(map[string]int),
		errs:     make(map[string]error),
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.ParentSpan(ctx))
	defer root.End("")
	ctx = trace.WithSpan(ctx, root)

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("load")
	span := trace.Begin(tracer, trace.ScopePhase, "load", root.ID())
	files, listErr := expandSources(paths, a.reporter)
	ids, loadErr := loadFiles(fileSet, files, a.reporter)
	loadErr = errors.Join(listErr, loadErr)
	for _, id := range ids {
		a.Chunks = append(a.Chunks, SplitComponents(fileSet.Get(id))...)
	}
	note := strconv.Itoa(len(ids)) + " files, " + strconv.Itoa(len(a.Chunks)) + " components"
	span.End(note)
	timer.End(phase, note)

	if err := a.parse(ctx, opts, timer); err != nil {
		return a, err
	}

	phase = timer.Begin("check")
	span = trace.Begin(tracer, trace.ScopePhase, "check", root.ID())
	res, _ := sema.Check(a.Registry, sema.Options{Reporter: a.reporter, Top: opts.Top})
	a.Sema = res
	for _, name := range res.Failed() {
		err := res.Err(name)
		a.fail(name, err)
		opts.notify(Event{Component: name, Phase: PhaseCheck, Done: true, Err: err})
	}
	if res.TopErr != nil {
		a.fail("top:"+opts.Top, res.TopErr)
	}
	span.End("")
	timer.End(phase, strconv.Itoa(len(res.Order()))+" ok")

	return a, errors.Join(loadErr, a.Error())
}

type parsed struct {
	unit *ast.Unit
	err  error
}

func (a *Analysis) parse(ctx context.Context, opts Options, timer *observ.Timer) error {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)
	phase := timer.Begin("parse")
	span := trace.Begin(tracer, trace.ScopePhase, "parse", parent)

	for _, c := range a.Chunks {
		opts.notify(Event{Component: c.Label(), Phase: PhaseParse})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]parsed, len(a.Chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.jobs(), len(a.Chunks))))
	for i, c := range a.Chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cs := trace.Begin(tracer, trace.ScopeComponent, "parse:"+c.Label(), span.ID())
			start := time.Now()
			results[i] = a.parseChunk(c, opts)
			cs.End("")
			if results[i].err != nil {
				opts.notify(Event{Component: c.Label(), Phase: PhaseParse, Done: true, Err: results[i].err, Elapsed: time.Since(start)})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		timer.End(phase, "cancelled")
		return err
	}

	// регистрируем в порядке файлов, а не в порядке завершения
	for i, r := range results {
		c := a.Chunks[i]
		if r.err != nil {
			a.fail(c.Label(), r.err)
			continue
		}
		if !a.Registry.Add(r.unit) {
			err := diag.Fail(a.reporter, diag.Errorf(diag.NameError, diag.SemaDuplicateComponent,
				r.unit.Component().NameSpan, "component %s is declared more than once", r.unit.Name))
			a.fail(c.Label()+"@"+strconv.Itoa(i), err)
			continue
		}
		a.chunkOf[r.unit.Name] = i
		opts.notify(Event{Component: r.unit.Name, Phase: PhaseParse, Done: true})
	}
	note := strconv.Itoa(a.Registry.Len()) + " parsed"
	span.End(note)
	timer.End(phase, note)
	return nil
}

// parseChunk parses exactly one component from c; trailing tokens are an error.
func (a *Analysis) parseChunk(c Chunk, opts Options) parsed {
	lx := lexer.NewRange(a.FileSet.Get(c.File), c.Start, c.End, lexer.Options{Reporter: a.reporter})
	u, err := parser.ParseComponent(lx, parser.Options{
		Reporter:            a.reporter,
		KeepPlaceholderText: opts.KeepPlaceholderText,
	})
	if err != nil {
		return parsed{err: err}
	}
	if tok := lx.Peek(); tok.Kind != token.EOF {
		if lxErr := lx.Err(); lxErr != nil {
			return parsed{err: lxErr}
		}
		return parsed{err: diag.Fail(a.reporter, diag.Errorf(diag.SyntaxError, diag.SynExpectComponent,
			tok.Span, "expected 'component', found %s", tok.Kind))}
	}
	return parsed{unit: u}
}
