package ast

import "cdl/internal/source"

type Hints struct{ Items, Stmts, Exprs, Decls uint }

// Builder owns every arena of one parsed component.
type Builder struct {
	Components *Arena[Component]
	Items      *Items
	Stmts      *Stmts
	Exprs      *Exprs
	Decls      *Decls
}

func NewBuilder(hints Hints) *Builder {
	if hints.Items == 0 {
		hints.Items = 1 << 3
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 5
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 7
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 4
	}
	return &Builder{
		Components: NewArena[Component](1),
		Items:      NewItems(hints.Items),
		Stmts:      NewStmts(hints.Stmts),
		Exprs:      NewExprs(hints.Exprs),
		Decls:      NewDecls(hints.Decls),
	}
}

func (b *Builder) NewComponent(name string, nameSpan, span source.Span) ComponentID {
	return ComponentID(b.Components.Allocate(Component{Name: name, NameSpan: nameSpan, Span: span}))
}

func (b *Builder) Component(id ComponentID) *Component {
	return b.Components.Get(uint32(id))
}

func (b *Builder) PushItem(comp ComponentID, item ItemID) {
	c := b.Component(comp)
	c.Items = append(c.Items, item)
}

// Generics returns the generic declarations of comp in source order.
func (b *Builder) Generics(comp ComponentID) []DeclID {
	var out []DeclID
	for _, it := range b.Component(comp).Items {
		if decl, ok := b.Items.Generic(it); ok {
			out = append(out, decl)
		}
	}
	return out
}

// Ports returns the port declarations of comp; nil if there is no port block.
func (b *Builder) Ports(comp ComponentID) []DeclID {
	for _, it := range b.Component(comp).Items {
		if pl, ok := b.Items.PortList(it); ok {
			return pl.Ports
		}
	}
	return nil
}

// Arch returns the architecture of comp, if any.
func (b *Builder) Arch(comp ComponentID) (*Arch, bool) {
	for _, it := range b.Component(comp).Items {
		if arch, ok := b.Items.Arch(it); ok {
			return arch, true
		}
	}
	return nil, false
}

// Port finds a port by name.
func (b *Builder) Port(comp ComponentID, name string) (*Decl, bool) {
	for _, id := range b.Ports(comp) {
		if d := b.Decls.Get(id); d.Name == name {
			return d, true
		}
	}
	return nil, false
}
