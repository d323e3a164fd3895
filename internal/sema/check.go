package sema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/source"
)

// Options configure a check over a registry of parsed components.
type Options struct {
	Reporter diag.Reporter
	// Top names the component synthesis starts from. Empty disables the check.
	Top string
}

// Result is the component graph plus the per-component verdict.
type Result struct {
	Index Index
	Graph Graph
	Topo  *Topo
	// TopErr is the verdict on Options.Top; it is not tied to a component
	// that drops out of Order.
	TopErr *diag.Error
	errs   map[string]*diag.Error
}

// Check validates cross-component references and orders components so that
// every subcomponent precedes its users. Problems are isolated per component:
// a broken component and everything that instantiates it drop out of Order,
// the rest stay usable. The returned error joins every problem found.
func Check(reg *ast.Registry, opts Options) (*Result, error) {
	idx := BuildIndex(reg)
	g := BuildGraph(idx, reg)
	c := &checker{
		reg:  reg,
		opts: opts,
		res: &Result{
			Index: idx,
			Graph: g,
			Topo:  ToposortKahn(g),
			errs:  make(map[string]*diag.Error),
		},
	}
	c.checkNames()
	for _, name := range idx.IDToName {
		if _, failed := c.res.errs[name]; failed {
			continue
		}
		u, _ := reg.Get(name)
		if e := c.checkUnit(u); e != nil {
			c.fail(name, e)
		}
	}
	c.checkCycles()
	c.propagate()
	c.res.TopErr = c.checkTop()

	var all []error
	if c.res.TopErr != nil {
		all = append(all, c.res.TopErr)
	}
	for _, name := range idx.IDToName {
		if e, ok := c.res.errs[name]; ok {
			all = append(all, e)
		}
	}
	return c.res, errors.Join(all...)
}

// Order returns the healthy components, dependencies first.
func (r *Result) Order() []string {
	out := make([]string, 0, len(r.Topo.Order))
	for _, id := range r.Topo.Order {
		name := r.Index.IDToName[int(id)]
		if _, failed := r.errs[name]; !failed {
			out = append(out, name)
		}
	}
	return out
}

// Batches groups healthy components into waves; a wave only depends on earlier ones.
func (r *Result) Batches() [][]string {
	var out [][]string
	for _, batch := range r.Topo.Batches {
		var names []string
		for _, id := range batch {
			name := r.Index.IDToName[int(id)]
			if _, failed := r.errs[name]; !failed {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			out = append(out, names)
		}
	}
	return out
}

// Err returns the error that excluded name, or nil.
func (r *Result) Err(name string) error {
	if e, ok := r.errs[name]; ok {
		return e
	}
	return nil
}

// Failed lists excluded components alphabetically.
func (r *Result) Failed() []string {
	out := make([]string, 0, len(r.errs))
	for name := range r.errs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Deps returns the distinct component types name instantiates.
func (r *Result) Deps(name string) []string {
	id, ok := r.Index.NameToID[name]
	if !ok {
		return nil
	}
	return r.Index.names(r.Graph.Deps[int(id)])
}

type checker struct {
	reg  *ast.Registry
	opts Options
	res  *Result
}

func (c *checker) fail(name string, e *diag.Error, notes ...diag.Note) {
	c.res.errs[name] = e
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(e.Code, diag.SevError, e.Span, e.Message, notes)
	}
}

func (c *checker) unit(name string) *ast.Unit {
	u, _ := c.reg.Get(name)
	return u
}

// checkNames: VHDL не различает регистр, Adder и ADDER дают один entity.
func (c *checker) checkNames() {
	fold := cases.Fold()
	seen := make(map[string]string, len(c.res.Index.IDToName))
	for _, name := range c.res.Index.IDToName {
		key := fold.String(name)
		prev, dup := seen[key]
		if !dup {
			seen[key] = name
			continue
		}
		u := c.unit(name)
		e := diag.Errorf(diag.NameError, diag.SemaDuplicateComponent, u.Component().NameSpan,
			"component %s collides with %s (names are case-insensitive)", name, prev)
		c.fail(name, e, diag.Note{Span: c.unit(prev).Component().NameSpan, Msg: "previous declaration of " + prev})
	}
}

// checkUnit resolves instance types and every dotted port reference of u.
func (c *checker) checkUnit(u *ast.Unit) *diag.Error {
	instances := make(map[string]string)
	for _, ref := range Instances(u) {
		if _, ok := c.reg.Get(ref.Stmt.Type); !ok {
			return diag.Errorf(diag.NameError, diag.SemaUnknownComponent, ref.Stmt.TypeSpan,
				"component %s instantiates unknown component %s", u.Name, ref.Stmt.Type)
		}
		instances[ref.Stmt.Name] = ref.Stmt.Type
	}
	arch, ok := u.Tree.Arch(u.Root)
	if !ok {
		return nil
	}
	for _, st := range arch.Stmts {
		assign, isAssign := u.Tree.Stmts.Assign(st)
		if !isAssign {
			continue
		}
		for _, path := range u.Tree.Exprs.Paths(assign) {
			if e := c.checkPath(u, instances, path); e != nil {
				return e
			}
		}
	}
	return nil
}

func (c *checker) checkPath(u *ast.Unit, instances map[string]string, path ast.ExprID) *diag.Error {
	segs, ok := u.Tree.Exprs.Path(path)
	if !ok {
		return nil
	}
	sp := u.Tree.Exprs.Get(path).Span
	typ, known := instances[segs[0]]
	if !known {
		return diag.Errorf(diag.NameError, diag.SemaUnknownInstance, sp,
			"%s is not an instance in component %s", segs[0], u.Name)
	}
	if len(segs) > 2 {
		return diag.Errorf(diag.PortError, diag.SemaUnknownPort, sp,
			"%s reaches below the ports of instance %s", strings.Join(segs, "."), segs[0])
	}
	sub := c.unit(typ)
	if _, ok := sub.Tree.Port(sub.Root, segs[1]); !ok {
		return diag.Errorf(diag.PortError, diag.SemaUnknownPort, sp,
			"component %s has no port %s", typ, segs[1])
	}
	return nil
}

// checkCycles reports every component that lies on a cycle. Components that
// are only blocked by a cycle are handled by propagate.
func (c *checker) checkCycles() {
	if !c.res.Topo.Cyclic {
		return
	}
	idx := c.res.Index
	for _, id := range c.res.Topo.Blocked {
		name := idx.IDToName[int(id)]
		if _, failed := c.res.errs[name]; failed {
			continue
		}
		cycle := FindCycle(c.res.Graph, id)
		if cycle == nil {
			continue
		}
		e := diag.Errorf(diag.CircularReferenceError, diag.SemaCircularReference, c.unit(name).Component().NameSpan,
			"component %s instantiates itself through %s", name, strings.Join(idx.names(cycle), " -> "))
		c.fail(name, e)
	}
}

// propagate fails every component whose dependency failed.
func (c *checker) propagate() {
	idx := c.res.Index
	for changed := true; changed; {
		changed = false
		for id, name := range idx.IDToName {
			if _, failed := c.res.errs[name]; failed {
				continue
			}
			for _, dep := range c.res.Graph.Deps[id] {
				depName := idx.IDToName[int(dep)]
				cause, failed := c.res.errs[depName]
				if !failed {
					continue
				}
				sp := c.instanceSpan(name, depName)
				e := diag.Errorf(cause.Kind, diag.SemaDependencyFailed, sp,
					"component %s depends on %s, which has errors", name, depName)
				c.fail(name, e, diag.Note{Span: cause.Span, Msg: "first error in dependency: " + cause.Message})
				changed = true
				break
			}
		}
	}
}

func (c *checker) instanceSpan(user, typ string) source.Span {
	u := c.unit(user)
	for _, ref := range Instances(u) {
		if ref.Stmt.Type == typ {
			return ref.Stmt.TypeSpan
		}
	}
	return u.Component().NameSpan
}

func (c *checker) checkTop() *diag.Error {
	if c.opts.Top == "" {
		return nil
	}
	u, ok := c.reg.Get(c.opts.Top)
	if !ok {
		e := diag.Errorf(diag.NameError, diag.SemaUnknownTop, source.Span{},
			"top-level component %s is not defined", c.opts.Top)
		diag.Fail(c.opts.Reporter, e)
		return e
	}
	gens := u.Tree.Generics(u.Root)
	if len(gens) == 0 {
		return nil
	}
	if _, failed := c.res.errs[u.Name]; failed {
		return nil
	}
	first := u.Tree.Decls.Get(gens[0])
	e := diag.Errorf(diag.GenericError, diag.SemaTopHasGenerics, first.Span,
		"top-level component %s cannot declare generics (found %s)", u.Name, first.Name)
	c.fail(u.Name, e)
	return nil
}

// String is for debugging and the tree dump.
func (r *Result) String() string {
	var sb strings.Builder
	for _, name := range r.Index.IDToName {
		fmt.Fprintf(&sb, "%s -> [%s]", name, strings.Join(r.Deps(name), ", "))
		if e, ok := r.errs[name]; ok {
			fmt.Fprintf(&sb, " error: %s", e.Message)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
