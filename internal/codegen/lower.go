package codegen

import (
	"strings"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/source"
)

// lower runs the hierarchical port lowering over the current architecture:
// first every instance is collected, then every assignment is rebuilt into
// g.lowered with each `inst.port` replaced by the synthesized `inst_port`.
// The parsed tree is left untouched.
func (g *Generator) lower() *diag.Error {
	arch, ok := g.arch()
	if !ok {
		return nil
	}
	tree := g.unit.Tree
	for _, st := range arch.Stmts {
		inst, isInst := tree.Stmts.Instance(st)
		if !isInst {
			continue
		}
		state := &instanceState{
			stmt:     inst,
			sub:      g.lookup(inst.Type),
			generics: make(map[string]ast.ExprID),
			bound:    make(map[string]bool),
		}
		if inst.Generics.IsValid() {
			for _, item := range tree.Exprs.ListItems(inst.Generics) {
				bin, _ := tree.Exprs.Binary(item)
				name, _ := tree.Exprs.Ident(bin.Left)
				state.generics[name.Name] = bin.Right
			}
		}
		g.instances[inst.Name] = state
		g.instOrder = append(g.instOrder, inst.Name)
	}

	l := &lowering{g: g, src: tree.Exprs, dst: g.lowered}
	for _, st := range arch.Stmts {
		assign, isAssign := tree.Stmts.Assign(st)
		if !isAssign {
			continue
		}
		id := l.copy(assign)
		if l.err != nil {
			return l.err
		}
		g.assigns = append(g.assigns, id)
	}
	return nil
}

// lowering copies an expression tree between arenas, rewriting dotted paths.
type lowering struct {
	g   *Generator
	src *ast.Exprs
	dst *ast.Exprs
	err *diag.Error
}

func (l *lowering) copy(id ast.ExprID) ast.ExprID {
	if l.err != nil {
		return ast.NoExprID
	}
	return ast.VisitExpr[ast.ExprID](l.src, id, l)
}

func (l *lowering) span(id ast.ExprID) source.Span {
	return l.src.Get(id).Span
}

func (l *lowering) VisitIdent(id ast.ExprID, d *ast.ExprIdentData) ast.ExprID {
	return l.dst.NewIdent(l.span(id), d.Name)
}

func (l *lowering) VisitConst(id ast.ExprID, d *ast.ExprConstData) ast.ExprID {
	return l.dst.NewConst(l.span(id), d.Kind, d.Value)
}

func (l *lowering) VisitBinary(id ast.ExprID, d *ast.ExprBinaryData) ast.ExprID {
	if d.Op == ast.ExprBinaryMember {
		segs, ok := l.src.Path(id)
		if !ok {
			l.err = diag.Errorf(diag.NameError, diag.SemaUnknownInstance, l.span(id),
				"%s is not an instance port reference", l.src.SExpr(id))
			return ast.NoExprID
		}
		name, err := l.g.bindPort(segs, l.span(id))
		if err != nil {
			l.err = err
			return ast.NoExprID
		}
		return l.dst.NewIdent(l.span(id), name)
	}
	left := l.copy(d.Left)
	right := l.copy(d.Right)
	if l.err != nil {
		return ast.NoExprID
	}
	return l.dst.NewBinary(l.span(id), d.Op, left, right)
}

func (l *lowering) VisitUnary(id ast.ExprID, d *ast.ExprUnaryData) ast.ExprID {
	operand := l.copy(d.Operand)
	if l.err != nil {
		return ast.NoExprID
	}
	return l.dst.NewUnary(l.span(id), d.Op, operand)
}

func (l *lowering) VisitTernary(id ast.ExprID, d *ast.ExprTernaryData) ast.ExprID {
	cond := l.copy(d.Cond)
	then := l.copy(d.Then)
	els := l.copy(d.Else)
	if l.err != nil {
		return ast.NoExprID
	}
	return l.dst.NewTernary(l.span(id), cond, then, els)
}

func (l *lowering) VisitSplice(id ast.ExprID, d *ast.ExprSpliceData) ast.ExprID {
	target := l.copy(d.Target)
	high := l.copy(d.High)
	low := high
	if d.Low != d.High {
		low = l.copy(d.Low)
	}
	if l.err != nil {
		return ast.NoExprID
	}
	return l.dst.NewSplice(l.span(id), target, high, low)
}

// bindPort records `inst.port` in the instance port map and returns the name
// of the signal standing in for it. The first segment names the instance;
// any deeper segments are folded into the port name with '_'.
func (g *Generator) bindPort(segs []string, sp source.Span) (string, *diag.Error) {
	inst, ok := g.instances[segs[0]]
	if !ok {
		return "", diag.Errorf(diag.NameError, diag.SemaUnknownInstance, sp,
			"%s is not an instance in component %s", segs[0], g.unit.Name)
	}
	port := strings.Join(segs[1:], "_")
	name := strings.Join(segs, "_")
	if g.declared[name] {
		return "", diag.Errorf(diag.NameError, diag.SemaDuplicateDecl, sp,
			"signal %s for %s collides with a declaration in %s", name, strings.Join(segs, "."), g.unit.Name)
	}
	typ := "std_logic"
	if inst.sub != nil {
		decl, found := inst.sub.Tree.Port(inst.sub.Root, port)
		if !found {
			return "", diag.Errorf(diag.PortError, diag.SemaUnknownPort, sp,
				"component %s has no port %s", inst.stmt.Type, port)
		}
		if w, resolved := substituteWidth(decl.Width, g.unit.Tree.Exprs, inst.generics); resolved {
			typ = vhdlType(decl.Type, w)
		}
	}
	if !inst.bound[port] {
		inst.bound[port] = true
		inst.ports = append(inst.ports, portBinding{Port: port, Signal: name})
	}
	if !g.synthSeen[name] {
		g.synthSeen[name] = true
		g.synth = append(g.synth, synthSignal{Name: name, Type: typ, Span: sp})
	}
	return name, nil
}
