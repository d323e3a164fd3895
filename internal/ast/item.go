package ast

import "cdl/internal/source"

// ItemKind enumerates the children of a component body.
type ItemKind uint8

const (
	ItemGeneric ItemKind = iota + 1
	ItemPortList
	ItemArch
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type PortList struct {
	Ports []DeclID
}

// DefaultArchName is used when an arch block has no name.
const DefaultArchName = "implementation"

type Arch struct {
	Name     string
	NameSpan source.Span
	Stmts    []StmtID
}

type Component struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Items    []ItemID
}

type Items struct {
	Arena     *Arena[Item]
	PortLists *Arena[PortList]
	Archs     *Arena[Arch]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:     NewArena[Item](capHint),
		PortLists: NewArena[PortList](1),
		Archs:     NewArena[Arch](1),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewGeneric(span source.Span, decl DeclID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: ItemGeneric, Span: span, Payload: PayloadID(decl)}))
}

func (i *Items) Generic(id ItemID) (DeclID, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemGeneric {
		return NoDeclID, false
	}
	return DeclID(it.Payload), true
}

func (i *Items) NewPortList(span source.Span, ports []DeclID) ItemID {
	payload := i.PortLists.Allocate(PortList{Ports: ports})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemPortList, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) PortList(id ItemID) (*PortList, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemPortList {
		return nil, false
	}
	return i.PortLists.Get(uint32(it.Payload)), true
}

func (i *Items) NewArch(span source.Span, arch Arch) ItemID {
	if arch.Name == "" {
		arch.Name = DefaultArchName
	}
	payload := i.Archs.Allocate(arch)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemArch, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Arch(id ItemID) (*Arch, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemArch {
		return nil, false
	}
	return i.Archs.Get(uint32(it.Payload)), true
}
