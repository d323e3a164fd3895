package codegen

import (
	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/source"
)

type Options struct {
	Reporter    diag.Reporter
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Generator emits one VHDL design unit per component. The registry, if set,
// supplies subcomponent interfaces for component declarations and for the
// types of synthesized signals. A Generator is not safe for concurrent use.
type Generator struct {
	reg  *ast.Registry
	opts Options

	// состояние одной архитектуры, сбрасывается в reset
	unit      *ast.Unit
	instances map[string]*instanceState
	instOrder []string
	synth     []synthSignal
	synthSeen map[string]bool
	declared  map[string]bool
	lowered   *ast.Exprs
	assigns   []ast.ExprID
}

// portBinding is one `port => signal` entry of a port map.
type portBinding struct {
	Port   string
	Signal string
}

type instanceState struct {
	stmt     *ast.InstanceStmt
	sub      *ast.Unit // nil when the type is not in the registry
	generics map[string]ast.ExprID
	ports    []portBinding
	bound    map[string]bool
}

// synthSignal stands in for a subcomponent port referenced from an expression.
type synthSignal struct {
	Name string
	Type string
	Span source.Span
}

func New(reg *ast.Registry, opts Options) *Generator {
	return &Generator{reg: reg, opts: opts.withDefaults()}
}

// Emit renders u without any knowledge of other components.
func Emit(u *ast.Unit) (string, error) {
	return New(nil, Options{}).Emit(u)
}

// Emit lowers the architecture of u and renders the complete design unit.
// Nothing is returned on error.
func (g *Generator) Emit(u *ast.Unit) (string, error) {
	g.reset(u)
	if err := g.lower(); err != nil {
		return "", diag.Fail(g.opts.Reporter, err)
	}
	w := newWriter(g.opts.IndentWidth)
	g.emitPreamble(w)
	w.Blank()
	g.emitEntity(w)
	w.Blank()
	g.emitArch(w)
	return w.String(), nil
}

func (g *Generator) reset(u *ast.Unit) {
	g.unit = u
	g.instances = make(map[string]*instanceState)
	g.instOrder = g.instOrder[:0]
	g.synth = g.synth[:0]
	g.synthSeen = make(map[string]bool)
	g.declared = declaredNames(u)
	g.lowered = ast.NewExprs(0)
	g.assigns = g.assigns[:0]
}

func (g *Generator) arch() (*ast.Arch, bool) {
	return g.unit.Tree.Arch(g.unit.Root)
}

func (g *Generator) lookup(name string) *ast.Unit {
	if g.reg == nil {
		return nil
	}
	u, _ := g.reg.Get(name)
	return u
}

// declaredNames collects every name the component itself declares.
func declaredNames(u *ast.Unit) map[string]bool {
	tree := u.Tree
	names := make(map[string]bool)
	for _, id := range tree.Generics(u.Root) {
		names[tree.Decls.Get(id).Name] = true
	}
	for _, id := range tree.Ports(u.Root) {
		names[tree.Decls.Get(id).Name] = true
	}
	arch, ok := tree.Arch(u.Root)
	if !ok {
		return names
	}
	for _, st := range arch.Stmts {
		if d, isDecl := tree.Stmts.Decl(st); isDecl {
			names[tree.Decls.Get(d).Name] = true
		}
		if inst, isInst := tree.Stmts.Instance(st); isInst {
			names[inst.Name] = true
		}
	}
	return names
}
