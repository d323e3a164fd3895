package ast

import (
	"testing"

	"cdl/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("id=%d len=%d", id, a.Len())
	}
}

func TestPathOfDottedChain(t *testing.T) {
	e := NewExprs(0)
	sp := source.Span{}
	// a.b.c is right-nested: a . (b . c)
	chain := e.NewBinary(sp, ExprBinaryMember, e.NewIdent(sp, "a"),
		e.NewBinary(sp, ExprBinaryMember, e.NewIdent(sp, "b"), e.NewIdent(sp, "c")))
	if got := e.PathString(chain); got != "a.b.c" {
		t.Fatalf("PathString = %q", got)
	}
	sum := e.NewBinary(sp, ExprBinaryAdd, e.NewIdent(sp, "a"), e.NewIdent(sp, "b"))
	if _, ok := e.Path(sum); ok {
		t.Fatal("a + b is not a path")
	}
}

func TestListItems(t *testing.T) {
	e := NewExprs(0)
	sp := source.Span{}
	one := e.NewBinary(sp, ExprBinaryGenericAssign, e.NewIdent(sp, "W"), e.NewConst(sp, ConstInt, "8"))
	two := e.NewBinary(sp, ExprBinaryGenericAssign, e.NewIdent(sp, "D"), e.NewConst(sp, ConstInt, "2"))
	list := e.NewBinary(sp, ExprBinaryList, one, two)
	items := e.ListItems(list)
	if len(items) != 2 || items[0] != one || items[1] != two {
		t.Fatalf("ListItems = %v", items)
	}
	if got := e.ListItems(NoExprID); len(got) != 0 {
		t.Fatalf("empty list = %v", got)
	}
}

type kindCounter struct{ seen []ExprKind }

func (k *kindCounter) VisitIdent(ExprID, *ExprIdentData) int {
	k.seen = append(k.seen, ExprIdent)
	return 1
}
func (k *kindCounter) VisitConst(ExprID, *ExprConstData) int {
	k.seen = append(k.seen, ExprConst)
	return 1
}
func (k *kindCounter) VisitBinary(ExprID, *ExprBinaryData) int { return 2 }
func (k *kindCounter) VisitUnary(ExprID, *ExprUnaryData) int   { return 3 }
func (k *kindCounter) VisitTernary(ExprID, *ExprTernaryData) int {
	return 4
}
func (k *kindCounter) VisitSplice(ExprID, *ExprSpliceData) int { return 5 }

func TestVisitExprDispatch(t *testing.T) {
	e := NewExprs(0)
	sp := source.Span{}
	x := e.NewIdent(sp, "x")
	ids := map[ExprID]int{
		x:                                    1,
		e.NewConst(sp, ConstBool, "true"):    1,
		e.NewBinary(sp, ExprBinaryAdd, x, x): 2,
		e.NewUnary(sp, ExprUnaryParen, x):    3,
		e.NewTernary(sp, x, x, x):            4,
		e.NewSplice(sp, x, x, x):             5,
	}
	v := &kindCounter{}
	for id, want := range ids {
		if got := VisitExpr[int](e, id, v); got != want {
			t.Errorf("%v dispatched to %d, want %d", e.Get(id).Kind, got, want)
		}
	}
}

func TestBuilderLookups(t *testing.T) {
	b := NewBuilder(Hints{})
	comp := b.NewComponent("Adder", source.Span{}, source.Span{})
	w := b.Decls.New(Decl{Kind: DeclGeneric, Name: "W", Type: TypeInt})
	b.PushItem(comp, b.Items.NewGeneric(source.Span{}, w))
	a := b.Decls.New(Decl{Kind: DeclPort, Name: "A", Type: TypeVec, Dir: PortIn, Width: Width{Kind: WidthGeneric, Name: "W"}})
	b.PushItem(comp, b.Items.NewPortList(source.Span{}, []DeclID{a}))
	b.PushItem(comp, b.Items.NewArch(source.Span{}, Arch{}))

	if gs := b.Generics(comp); len(gs) != 1 || gs[0] != w {
		t.Fatalf("Generics = %v", gs)
	}
	if p, ok := b.Port(comp, "A"); !ok || p.Width.String() != "W" {
		t.Fatalf("Port(A) = %+v, %v", p, ok)
	}
	if _, ok := b.Port(comp, "B"); ok {
		t.Fatal("unexpected port B")
	}
	arch, ok := b.Arch(comp)
	if !ok || arch.Name != DefaultArchName {
		t.Fatalf("Arch = %+v, %v", arch, ok)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if !r.Add(&Unit{Name: "B"}) || !r.Add(&Unit{Name: "A"}) {
		t.Fatal("first adds must succeed")
	}
	if r.Add(&Unit{Name: "A"}) {
		t.Fatal("duplicate accepted")
	}
	if names := r.Names(); len(names) != 2 || names[0] != "B" {
		t.Fatalf("Names = %v", names)
	}
	if sorted := r.SortedNames(); sorted[0] != "A" {
		t.Fatalf("SortedNames = %v", sorted)
	}
}

func TestWidthBits(t *testing.T) {
	cases := []struct {
		w    Width
		want uint32
	}{
		{Width{}, 1},
		{Width{Kind: WidthLiteral, Value: 8}, 8},
		{Width{Kind: WidthGeneric, Name: "N"}, 0},
	}
	for _, tc := range cases {
		if got := tc.w.Bits(); got != tc.want {
			t.Errorf("%+v.Bits() = %d, want %d", tc.w, got, tc.want)
		}
	}
}
