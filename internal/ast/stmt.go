package ast

import "cdl/internal/source"

type StmtKind uint8

const (
	// StmtDecl: signal, variable or const declaration.
	StmtDecl StmtKind = iota + 1
	// StmtInstance: `Type name = new Type(...)`.
	StmtInstance
	// StmtAssign: `lhs <= rhs`, stored as a SigAssign binary.
	StmtAssign
	// StmtPlaceholder: process/generate/connect block kept as raw text.
	StmtPlaceholder
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// InstanceStmt binds a subcomponent instance. Generics is a `,` chain of
// `=` binaries, or NoExprID when the parentheses were empty.
type InstanceStmt struct {
	Name     string
	NameSpan source.Span
	Type     string
	TypeSpan source.Span
	Generics ExprID
}

type PlaceholderKind uint8

const (
	PlaceholderProcess PlaceholderKind = iota + 1
	PlaceholderGenerate
	PlaceholderConnect
)

func (k PlaceholderKind) String() string {
	switch k {
	case PlaceholderProcess:
		return "process"
	case PlaceholderGenerate:
		return "generate"
	case PlaceholderConnect:
		return "connect"
	}
	return "?"
}

// PlaceholderStmt is parsed for balance only; nothing lowers it yet.
type PlaceholderStmt struct {
	Kind PlaceholderKind
	Body string
}

type Stmts struct {
	Arena        *Arena[Stmt]
	Instances    *Arena[InstanceStmt]
	Placeholders *Arena[PlaceholderStmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Instances:    NewArena[InstanceStmt](capHint / 4),
		Placeholders: NewArena[PlaceholderStmt](0),
	}
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewDecl(span source.Span, decl DeclID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtDecl, Span: span, Payload: PayloadID(decl)}))
}

// Decl returns the declaration of a StmtDecl.
func (s *Stmts) Decl(id StmtID) (DeclID, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtDecl {
		return NoDeclID, false
	}
	return DeclID(st.Payload), true
}

func (s *Stmts) NewInstance(span source.Span, inst InstanceStmt) StmtID {
	payload := s.Instances.Allocate(inst)
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtInstance, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Instance(id StmtID) (*InstanceStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtInstance {
		return nil, false
	}
	return s.Instances.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewAssign(span source.Span, expr ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtAssign, Span: span, Payload: PayloadID(expr)}))
}

// Assign returns the SigAssign binary of a StmtAssign.
func (s *Stmts) Assign(id StmtID) (ExprID, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return NoExprID, false
	}
	return ExprID(st.Payload), true
}

func (s *Stmts) NewPlaceholder(span source.Span, ph PlaceholderStmt) StmtID {
	payload := s.Placeholders.Allocate(ph)
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtPlaceholder, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Placeholder(id StmtID) (*PlaceholderStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtPlaceholder {
		return nil, false
	}
	return s.Placeholders.Get(uint32(st.Payload)), true
}
