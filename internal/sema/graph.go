package sema

import (
	"slices"

	"cdl/internal/ast"
)

// Graph: Users[dep] lists components instantiating dep, so Kahn yields
// dependencies before their users.
type Graph struct {
	Deps  [][]NodeID // Deps[user] = []dep, sorted, unique
	Users [][]NodeID
	Indeg []int // число различных зависимостей
}

// InstanceRef is one `Type name = new Type(...)` statement.
type InstanceRef struct {
	Unit *ast.Unit
	Stmt *ast.InstanceStmt
}

// Instances lists the instance statements of u in source order.
func Instances(u *ast.Unit) []InstanceRef {
	arch, ok := u.Tree.Arch(u.Root)
	if !ok {
		return nil
	}
	var out []InstanceRef
	for _, st := range arch.Stmts {
		if inst, isInst := u.Tree.Stmts.Instance(st); isInst {
			out = append(out, InstanceRef{Unit: u, Stmt: inst})
		}
	}
	return out
}

// BuildGraph adds an edge for every instance whose type is a known component.
// Unknown types are left to the caller.
func BuildGraph(idx Index, reg *ast.Registry) Graph {
	n := len(idx.IDToName)
	g := Graph{
		Deps:  make([][]NodeID, n),
		Users: make([][]NodeID, n),
		Indeg: make([]int, n),
	}
	for from, name := range idx.IDToName {
		u, _ := reg.Get(name)
		seen := make(map[NodeID]struct{})
		for _, ref := range Instances(u) {
			to, ok := idx.NameToID[ref.Stmt.Type]
			if !ok {
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Deps[from] = append(g.Deps[from], to)
		}
		slices.Sort(g.Deps[from])
		g.Indeg[from] = len(g.Deps[from])
	}
	for from, deps := range g.Deps {
		for _, to := range deps {
			g.Users[int(to)] = append(g.Users[int(to)], NodeID(from))
		}
	}
	return g
}
