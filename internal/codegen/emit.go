package codegen

import (
	"fmt"

	"cdl/internal/ast"
)

var preamble = []string{
	"library ieee;",
	"use ieee.std_logic_1164.all;",
	"use ieee.numeric_std.all;",
}

func (g *Generator) emitPreamble(w *Writer) {
	for _, line := range preamble {
		w.Line(line)
	}
}

func (g *Generator) emitEntity(w *Writer) {
	w.Line("entity " + g.unit.Name + " is")
	w.Indent()
	emitInterface(w, g.unit)
	w.Dedent()
	w.Line("end entity;")
}

// emitInterface writes the generic and port clauses shared by entity and
// component declarations. Either clause is omitted when empty.
func emitInterface(w *Writer, u *ast.Unit) {
	tree := u.Tree
	if gens := tree.Generics(u.Root); len(gens) > 0 {
		items := make([]string, len(gens))
		for i, id := range gens {
			d := tree.Decls.Get(id)
			items[i] = d.Name + " : " + vhdlType(d.Type, d.Width)
		}
		w.list("generic", items, ";", ";")
	}
	ports := tree.Ports(u.Root)
	if len(ports) == 0 {
		return
	}
	nameWidth := 0
	for _, id := range ports {
		nameWidth = max(nameWidth, len(tree.Decls.Get(id).Name))
	}
	items := make([]string, len(ports))
	for i, id := range ports {
		d := tree.Decls.Get(id)
		items[i] = fmt.Sprintf("%-*s : %s %s", nameWidth, d.Name, portDir(d.Dir), vhdlType(d.Type, d.Width))
	}
	w.list("port", items, ";", ";")
}

// portDir: input -> "in ", output -> "out", padded so types line up.
func portDir(d ast.PortDir) string {
	if d == ast.PortOut {
		return "out"
	}
	return "in "
}

func (g *Generator) emitArch(w *Writer) {
	name := ast.DefaultArchName
	arch, hasArch := g.arch()
	if hasArch {
		name = arch.Name
	}
	w.Line("architecture " + name + " of " + g.unit.Name + " is")
	w.Indent()
	if hasArch {
		g.emitComponentDecls(w)
		g.emitDecls(w, arch)
	}
	for _, s := range g.synth {
		w.Line("signal " + s.Name + " : " + s.Type + ";")
	}
	w.Dedent()
	w.Line("begin")
	w.Indent()
	for _, inst := range g.instOrder {
		g.emitInstance(w, g.instances[inst])
	}
	r := renderer{e: g.lowered}
	for _, id := range g.assigns {
		w.Line(r.render(id) + ";")
	}
	if hasArch {
		for _, st := range arch.Stmts {
			if ph, ok := g.unit.Tree.Stmts.Placeholder(st); ok {
				w.Line("-- " + ph.Kind.String() + " block (not lowered)")
			}
		}
	}
	w.Dedent()
	w.Line("end architecture;")
}

// emitComponentDecls declares each known subcomponent type once, in order of
// first instantiation.
func (g *Generator) emitComponentDecls(w *Writer) {
	seen := make(map[string]bool)
	for _, name := range g.instOrder {
		inst := g.instances[name]
		if inst.sub == nil || seen[inst.sub.Name] {
			continue
		}
		seen[inst.sub.Name] = true
		w.Line("component " + inst.sub.Name + " is")
		w.Indent()
		emitInterface(w, inst.sub)
		w.Dedent()
		w.Line("end component;")
	}
}

// emitDecls writes signals first, then shared variables and constants,
// each group in source order.
func (g *Generator) emitDecls(w *Writer, arch *ast.Arch) {
	tree := g.unit.Tree
	var signals, others []*ast.Decl
	for _, st := range arch.Stmts {
		id, ok := tree.Stmts.Decl(st)
		if !ok {
			continue
		}
		d := tree.Decls.Get(id)
		if d.Kind == ast.DeclSignal {
			signals = append(signals, d)
		} else {
			others = append(others, d)
		}
	}
	r := renderer{e: tree.Exprs}
	for _, d := range append(signals, others...) {
		typ := vhdlType(d.Type, d.Width)
		switch d.Kind {
		case ast.DeclVariable:
			w.Line("shared variable " + d.Name + " : " + typ + ";")
		case ast.DeclConst:
			w.Line("constant " + d.Name + " : " + typ + " := " + r.render(d.Value) + ";")
		default:
			w.Line("signal " + d.Name + " : " + typ + ";")
		}
	}
}

func (g *Generator) emitInstance(w *Writer, inst *instanceState) {
	tree := g.unit.Tree
	var generics []string
	if inst.stmt.Generics.IsValid() {
		r := renderer{e: tree.Exprs}
		for _, item := range tree.Exprs.ListItems(inst.stmt.Generics) {
			generics = append(generics, r.render(item))
		}
	}
	ports := make([]string, len(inst.ports))
	for i, b := range inst.ports {
		ports[i] = b.Port + " => " + b.Signal
	}

	head := inst.stmt.Name + " : " + inst.stmt.Type
	if inst.sub == nil {
		head = inst.stmt.Name + " : entity work." + inst.stmt.Type
	}
	if len(generics) == 0 && len(ports) == 0 {
		w.Line(head + ";")
		return
	}
	w.Line(head)
	w.Indent()
	if len(generics) > 0 {
		tail := ""
		if len(ports) == 0 {
			tail = ";"
		}
		w.list("generic map", generics, ",", tail)
	}
	if len(ports) > 0 {
		w.list("port map", ports, ",", ";")
	}
	w.Dedent()
}
